package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/config"
)

// StdLogger implements the operation logger interface over log/slog.
// Levels are the uppercase names used across the code base: DEBUG, INFO, WARN, ERROR.
type StdLogger struct {
	logger *slog.Logger
	closer io.Closer
}

// New builds a logger from the logging configuration
func New(cfg config.LoggingConfig) (*StdLogger, error) {
	var out io.Writer
	var closer io.Closer
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	default:
		return nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	l := newLogger(out, cfg.Level, cfg.Format, cfg.AddSource)
	l.closer = closer
	return l, nil
}

// NewWithWriter builds a logger writing to w; used by tests and the CLI
func NewWithWriter(w io.Writer, level, format string) *StdLogger {
	return newLogger(w, level, format, false)
}

func newLogger(w io.Writer, level, format string, addSource bool) *StdLogger {
	opts := &slog.HandlerOptions{Level: parseLevel(level), AddSource: addSource}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return &StdLogger{logger: slog.New(handler)}
}

// With returns a logger that adds metadata to every record
func (l *StdLogger) With(metadata map[string]interface{}) *StdLogger {
	return &StdLogger{logger: l.logger.With(attrs(metadata)...), closer: l.closer}
}

// Log writes one record. The source, when enabled, is the caller of Log.
func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	ctx := context.Background()
	lvl := parseLevel(level)
	if !l.logger.Enabled(ctx, lvl) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:])
	r := slog.NewRecord(time.Now(), lvl, message, pcs[0])
	r.Add(attrs(metadata)...)
	_ = l.logger.Handler().Handle(ctx, r)
}

// Close releases the log file, if any
func (l *StdLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// attrs flattens metadata in key order so records are stable
func attrs(metadata map[string]interface{}) []any {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, metadata[k]))
	}
	return out
}
