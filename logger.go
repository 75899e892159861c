package catalogdb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with catalog-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLayout adds the collection layout to the logger.
func (l *Logger) WithLayout(layout string) *Logger {
	return &Logger{
		Logger: l.Logger.With("layout", layout),
	}
}

// LogFile logs the ingestion of one input file.
func (l *Logger) LogFile(ctx context.Context, file string, records int, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "file ingest failed",
			"file", file,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "file ingested",
			"file", file,
			"records", records,
			"bytes", bytes,
		)
	}
}

// LogSource logs the summary of one collection.
func (l *Logger) LogSource(ctx context.Context, files, records, overwrites int, elapsed time.Duration) {
	l.InfoContext(ctx, "collection ingested",
		"files", files,
		"records", records,
		"overwrites", overwrites,
		"elapsed", elapsed,
	)
}

// LogBuild logs the outcome of a build.
func (l *Logger) LogBuild(ctx context.Context, records, users, tags int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "build completed",
			"records", records,
			"users", users,
			"tags", tags,
			"elapsed", elapsed,
		)
	}
}
