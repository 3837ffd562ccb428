package runtime

import (
	stderrors "errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/manav03panchal/rewind/internal/errors"
	"github.com/manav03panchal/rewind/internal/history"
)

// ErrDiskFull is returned when a snapshot write fails for lack of space.
var ErrDiskFull = stderrors.New("disk full: unable to write to database")

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	if IsDiskFullError(err) {
		return "Free up disk space and try again. The in-memory session is unaffected."
	}
	return errors.GetSuggestion(err)
}

// FormatError formats an error for display, with suggestion and examples.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	if IsDiskFullError(err) {
		return "System error: " + err.Error() + "\n\n" + GetSuggestion(err)
	}

	msg := errors.FormatByCategory(err)
	if examples := errors.GetExamples(err); len(examples) > 0 {
		msg += "\n\nExamples:\n  " + strings.Join(examples, "\n  ")
	}
	return msg
}

// RecoverInvariant converts a history invariant panic into an internal
// error stored in *errp. Other panics are re-raised.
//
//	defer runtime.RecoverInvariant(&err)
func RecoverInvariant(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	var ie *history.InvariantError
	if e, ok := r.(error); ok && stderrors.As(e, &ie) {
		*errp = errors.WithCategory(ie, errors.CategoryInternal)
		return
	}
	panic(r)
}

// DiskFullError represents a disk full condition with additional context.
type DiskFullError struct {
	Op      string // The operation that failed (e.g., "save snapshot")
	Path    string // The database path, if on disk
	wrapped error
}

func (e *DiskFullError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("disk full during %s on %s: %v", e.Op, e.Path, e.wrapped)
	}
	return fmt.Sprintf("disk full during %s: %v", e.Op, e.wrapped)
}

func (e *DiskFullError) Unwrap() error {
	return ErrDiskFull
}

// NewDiskFullError creates a new DiskFullError.
func NewDiskFullError(op, path string, err error) *DiskFullError {
	return &DiskFullError{
		Op:      op,
		Path:    path,
		wrapped: err,
	}
}

// IsDiskFullError checks if an error indicates a disk full condition.
// It checks for ENOSPC and common disk full error patterns.
func IsDiskFullError(err error) bool {
	if err == nil {
		return false
	}

	if stderrors.Is(err, ErrDiskFull) {
		return true
	}

	var errno syscall.Errno
	if stderrors.As(err, &errno) && errno == syscall.ENOSPC {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"no space left on device",
		"disk full",
		"enospc",
		"not enough space",
	} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// WrapDiskFullError wraps err as a DiskFullError if it indicates disk full.
// Any other error is returned unchanged.
func WrapDiskFullError(err error, op, path string) error {
	if err == nil {
		return nil
	}
	if IsDiskFullError(err) {
		return NewDiskFullError(op, path, err)
	}
	return err
}
