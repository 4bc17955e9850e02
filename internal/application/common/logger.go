package common

import (
	"context"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// Logger is the structured operation logger carried through request contexts
type Logger = shared.Logger

type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return shared.NopLogger{}
}

// LoggerFromContextOK extracts the logger from context and reports whether one was set
func LoggerFromContextOK(ctx context.Context) (Logger, bool) {
	logger, ok := ctx.Value(loggerKey).(Logger)
	return logger, ok
}
