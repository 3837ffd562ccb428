package validate

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/rewind/internal/errors"
	"github.com/manav03panchal/rewind/internal/model"
)

// =============================================================================
// Record Field Tests
// =============================================================================

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "Mexico", nil},
		{"unicode", "Österreich", nil},
		{"empty", "", errors.ErrEmptyName},
		{"blank", "   ", errors.ErrEmptyName},
		{"too_long", strings.Repeat("a", MaxNameLength+1), errors.ErrNameTooLong},
		{"max_length", strings.Repeat("a", MaxNameLength), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Name(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errors.IsUserError(err))
		})
	}
}

func TestCategory(t *testing.T) {
	assert.NoError(t, Category(""))
	assert.NoError(t, Category("North America"))
	assert.ErrorIs(t, Category(strings.Repeat("x", MaxCategoryLength+1)), errors.ErrCategoryTooLong)
}

func TestParseMagnitude(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"130_000_000", 130_000_000, false},
		{"1,400,000,000", 1_400_000_000, false},
		{" 8000000 ", 8_000_000, false},
		{"", 0, true},
		{"_", 0, true},
		{"-5", 0, true},
		{"12x", 0, true},
		{"1.5", 0, true},
		{"18446744073709551615", math.MaxUint64, false},
		{"18446744073709551616", 0, true},
		{"99999999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMagnitude(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidMagnitude)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord(t *testing.T) {
	assert.NoError(t, Record(model.NewRecord("China", "Asia", 1)))
	assert.ErrorIs(t, Record(model.NewRecord("", "Asia", 1)), errors.ErrEmptyName)
	assert.ErrorIs(t, Record(model.NewRecord("x", strings.Repeat("c", 200), 1)), errors.ErrCategoryTooLong)
}

// =============================================================================
// Snapshot Tests
// =============================================================================

func TestSnapshotLabel(t *testing.T) {
	assert.NoError(t, SnapshotLabel(""))
	assert.NoError(t, SnapshotLabel("after import"))
	assert.Error(t, SnapshotLabel(strings.Repeat("l", MaxLabelLength+1)))
}

func TestSnapshotID(t *testing.T) {
	assert.NoError(t, SnapshotID("0190f6a4-8c3e-7d2a-9b1c-2f3e4d5c6b7a"))
	assert.Error(t, SnapshotID(""))

	err := SnapshotID("not-a-uuid")
	assert.ErrorIs(t, err, errors.ErrSnapshotNotFound)
}

func TestNonEmpty(t *testing.T) {
	assert.NoError(t, NonEmpty("label", "x"))
	assert.Error(t, NonEmpty("label", " "))
}

// =============================================================================
// Sanitize Tests
// =============================================================================

func TestSanitizeField(t *testing.T) {
	assert.Equal(t, "Mexico", SanitizeField("  Mexico\t"))
	assert.Equal(t, "AB", SanitizeField("A\x00B"))
	assert.Equal(t, "", SanitizeField("\n\r"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcdefg...", TruncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
	assert.Equal(t, "Öst...", TruncateString("Österreich", 6))
}
