package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	// Test storage defaults
	if !strings.Contains(cfg.Storage.Path, "rewind") {
		t.Errorf("expected Storage.Path under rewind data dir, got %q", cfg.Storage.Path)
	}
	if cfg.Storage.InMemory {
		t.Error("expected Storage.InMemory = false")
	}
	if cfg.Storage.SnapshotLimit != 50 {
		t.Errorf("expected Storage.SnapshotLimit = 50, got %d", cfg.Storage.SnapshotLimit)
	}

	// Test logging defaults
	if cfg.Logging.Level != slog.LevelInfo {
		t.Errorf("expected Logging.Level = info, got %v", cfg.Logging.Level)
	}
	if cfg.Logging.JSON {
		t.Error("expected Logging.JSON = false")
	}

	// Test session defaults
	if cfg.Session.InitialCapacity != 16 {
		t.Errorf("expected Session.InitialCapacity = 16, got %d", cfg.Session.InitialCapacity)
	}
}

func TestGlobalConfigExists(t *testing.T) {
	if Global == nil {
		t.Fatal("Global config should not be nil")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REWIND_DATABASE", "/tmp/rewind-test")
	t.Setenv("REWIND_SNAPSHOT_LIMIT", "5")
	t.Setenv("REWIND_LOG_LEVEL", "debug")
	t.Setenv("REWIND_LOG_JSON", "true")
	t.Setenv("REWIND_CAPACITY", "128")
	t.Setenv("REWIND_AUTOSAVE", " @every 1m ")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	if cfg.Storage.Path != "/tmp/rewind-test" {
		t.Errorf("expected Storage.Path = /tmp/rewind-test, got %q", cfg.Storage.Path)
	}
	if cfg.Storage.SnapshotLimit != 5 {
		t.Errorf("expected Storage.SnapshotLimit = 5, got %d", cfg.Storage.SnapshotLimit)
	}
	if cfg.Logging.Level != slog.LevelDebug {
		t.Errorf("expected Logging.Level = debug, got %v", cfg.Logging.Level)
	}
	if !cfg.Logging.JSON {
		t.Error("expected Logging.JSON = true")
	}
	if cfg.Session.InitialCapacity != 128 {
		t.Errorf("expected Session.InitialCapacity = 128, got %d", cfg.Session.InitialCapacity)
	}
	if cfg.Session.AutoSave != "@every 1m" {
		t.Errorf("expected Session.AutoSave = @every 1m, got %q", cfg.Session.AutoSave)
	}
}

func TestLoadFromEnvInMemory(t *testing.T) {
	t.Setenv("REWIND_DATABASE", InMemoryPath)

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	if !cfg.Storage.InMemory {
		t.Error("expected Storage.InMemory = true")
	}
}

func TestLoadFromEnvInvalidValues(t *testing.T) {
	t.Setenv("REWIND_SNAPSHOT_LIMIT", "-1")
	t.Setenv("REWIND_LOG_LEVEL", "loud")
	t.Setenv("REWIND_LOG_JSON", "maybe")
	t.Setenv("REWIND_CAPACITY", "zero")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()
	defaults := DefaultRuntimeConfig()

	if cfg.Storage.SnapshotLimit != defaults.Storage.SnapshotLimit {
		t.Errorf("invalid REWIND_SNAPSHOT_LIMIT should be ignored, got %d", cfg.Storage.SnapshotLimit)
	}
	if cfg.Logging.Level != defaults.Logging.Level {
		t.Errorf("invalid REWIND_LOG_LEVEL should be ignored, got %v", cfg.Logging.Level)
	}
	if cfg.Logging.JSON {
		t.Error("invalid REWIND_LOG_JSON should be ignored")
	}
	if cfg.Session.InitialCapacity != defaults.Session.InitialCapacity {
		t.Errorf("invalid REWIND_CAPACITY should be ignored, got %d", cfg.Session.InitialCapacity)
	}
}

func TestReset(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Storage.SnapshotLimit = 1
	cfg.Logging.JSON = true

	cfg.Reset()

	if cfg.Storage.SnapshotLimit != 50 || cfg.Logging.JSON {
		t.Error("Reset should restore defaults")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"trace", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := parseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
