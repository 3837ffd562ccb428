// Package validate provides input validation helpers for the Rewind CLI.
package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/manav03panchal/rewind/internal/errors"
	"github.com/manav03panchal/rewind/internal/model"
)

const (
	// MaxNameLength is the maximum length for a record name.
	MaxNameLength = 128
	// MaxCategoryLength is the maximum length for a record category.
	MaxCategoryLength = 128
	// MaxLabelLength is the maximum length for a snapshot label.
	MaxLabelLength = 256
)

// Name validates a record name.
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewUserErrorWithField("name", name,
			"Record name cannot be empty",
			"Provide a record name").WithCause(errors.ErrEmptyName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Record name too long",
			"Record names must be 128 characters or fewer").WithCause(errors.ErrNameTooLong)
	}
	return nil
}

// Category validates a record category. Empty categories are allowed.
func Category(category string) error {
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return errors.NewUserErrorWithField("category", category,
			"Record category too long",
			"Record categories must be 128 characters or fewer").WithCause(errors.ErrCategoryTooLong)
	}
	return nil
}

// ParseMagnitude parses a non-negative whole number. Digit groups may be
// separated with '_' or ','.
func ParseMagnitude(s string) (uint64, error) {
	cleaned := strings.NewReplacer("_", "", ",", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, errors.NewUserErrorWithField("magnitude", s,
			"Magnitude cannot be empty", "").WithCause(errors.ErrInvalidMagnitude)
	}
	n, err := strconv.ParseUint(cleaned, 10, 64)
	if err != nil {
		return 0, errors.NewUserErrorWithField("magnitude", s,
			"Invalid magnitude", "").WithCause(errors.ErrInvalidMagnitude)
	}
	return n, nil
}

// Record validates every field of a record.
func Record(r model.Record) error {
	if err := Name(r.Name); err != nil {
		return err
	}
	return Category(r.Category)
}

// SnapshotLabel validates a snapshot label. Empty labels are allowed.
func SnapshotLabel(label string) error {
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return errors.NewUserErrorWithField("label", TruncateString(label, 32),
			"Snapshot label too long",
			"Snapshot labels must be 256 characters or fewer")
	}
	return nil
}

// SnapshotID validates a snapshot identifier (a UUID).
func SnapshotID(id string) error {
	if id == "" {
		return errors.NewUserError("Snapshot ID cannot be empty",
			"Use 'rewind snapshots list' to find an ID")
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.NewUserErrorWithField("id", id,
			"Invalid snapshot ID",
			"Use 'rewind snapshots list' to find an ID").WithCause(errors.ErrSnapshotNotFound)
	}
	return nil
}

// NonEmpty validates that a field is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserErrorWithField(field, value,
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}
