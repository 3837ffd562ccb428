package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a type for context keys used by this package.
type contextKey int

const (
	sessionIDKey contextKey = iota
)

// GenerateSessionID creates a new unique session ID.
func GenerateSessionID() string {
	return uuid.NewString()
}

// WithSessionID returns a new context with the given session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// NewSessionContext creates a new context with a generated session ID.
func NewSessionContext() context.Context {
	return WithSessionID(context.Background(), GenerateSessionID())
}

// SessionIDFromContext extracts the session ID from the context.
// Returns empty string if no session ID is set.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// LoggerFromContext returns a logger with the session ID from context.
// If no session ID is in the context, returns the default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if id := SessionIDFromContext(ctx); id != "" {
		logger = logger.With(KeySession, id)
	}
	return logger
}
