// Package config provides centralized configuration for Rewind runtime values.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/manav03panchal/rewind/internal/storage"
)

// InMemoryPath is the REWIND_DATABASE value that selects an in-memory store.
const InMemoryPath = ":memory:"

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	// Storage configuration
	Storage StorageConfig

	// Logging configuration
	Logging LoggingConfig

	// Session configuration
	Session SessionConfig
}

// StorageConfig holds snapshot storage configuration.
type StorageConfig struct {
	// Path is the snapshot database directory.
	// Default: $XDG_DATA_HOME/rewind/snapshots
	Path string

	// InMemory keeps snapshots in memory for the lifetime of the process.
	// Default: false
	InMemory bool

	// SnapshotLimit is the number of snapshots kept; older ones are pruned
	// after each save. Zero keeps everything.
	// Default: 50
	SnapshotLimit int
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Default: info
	Level slog.Level

	// JSON switches the log handler to JSON output.
	// Default: false
	JSON bool
}

// SessionConfig holds editing session configuration.
type SessionConfig struct {
	// InitialCapacity preallocates room for this many records.
	// Default: 16
	InitialCapacity int

	// AutoSave is a cron schedule for periodic snapshots in the TUI.
	// Default: "" (disabled)
	AutoSave string
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Storage: StorageConfig{
			Path:          storage.DefaultPath(),
			SnapshotLimit: 50,
		},
		Logging: LoggingConfig{
			Level: slog.LevelInfo,
		},
		Session: SessionConfig{
			InitialCapacity: 16,
		},
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

// initGlobal initializes the global config with defaults and environment overrides.
func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	// Storage configuration
	if v := os.Getenv("REWIND_DATABASE"); v != "" {
		if v == InMemoryPath {
			c.Storage.InMemory = true
		} else {
			c.Storage.Path = v
		}
	}
	if v := os.Getenv("REWIND_SNAPSHOT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Storage.SnapshotLimit = n
		}
	}

	// Logging configuration
	if v := os.Getenv("REWIND_LOG_LEVEL"); v != "" {
		if level, ok := parseLevel(v); ok {
			c.Logging.Level = level
		}
	}
	if v := os.Getenv("REWIND_LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.JSON = b
		}
	}

	// Session configuration
	if v := os.Getenv("REWIND_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Session.InitialCapacity = n
		}
	}
	if v := os.Getenv("REWIND_AUTOSAVE"); v != "" {
		c.Session.AutoSave = strings.TrimSpace(v)
	}
}

// parseLevel maps a level name to a slog level.
func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// ReloadFromEnv reloads configuration from environment variables.
// This is useful for testing or when environment variables change.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
