package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrEmptyName:         "Give every record a name, e.g. 'add Mexico \"North America\" 130_000_000'.",
	ErrNameTooLong:       "Record names must be 128 characters or fewer.",
	ErrCategoryTooLong:   "Record categories must be 128 characters or fewer.",
	ErrInvalidMagnitude:  "Magnitudes are whole non-negative numbers; '_' and ',' separators are allowed.",
	ErrUnknownCommand:    "Valid commands: add, remove, undo, redo, print, dump, snapshot.",
	ErrMissingArgument:   "Use 'add <name> <category> <magnitude>'; quote fields that contain spaces.",
	ErrTooManyArguments:  "Quote fields that contain spaces, e.g. \"South America\".",
	ErrUnterminatedQuote: "Close every opening quote on the same line.",
	ErrSnapshotNotFound:  "Use 'rewind snapshots list' to see stored snapshots.",

	// System errors
	ErrDatabaseCorrupted: "Remove the snapshot database directory and try again; only snapshots are stored there.",
	ErrPermissionDenied:  "Check file permissions in your data directory (~/.local/share/rewind/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// An explicit suggestion on the error wins over the generic one.
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// CommandExamples provides example script lines for common errors.
var CommandExamples = map[error][]string{
	ErrMissingArgument: {
		"add Mexico \"North America\" 130_000_000",
		"add Austria Europe 8000000",
	},
	ErrUnknownCommand: {
		"remove",
		"undo",
		"redo",
		"snapshot \"after import\"",
	},
}

// GetExamples returns example script lines for an error.
func GetExamples(err error) []string {
	for knownErr, examples := range CommandExamples {
		if errors.Is(err, knownErr) {
			return examples
		}
	}
	return nil
}
