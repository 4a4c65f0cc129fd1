package gbsdata

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with dataset-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDataset adds a dataset name field to the logger.
func (l *Logger) WithDataset(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dataset", name),
	}
}

// WithFile adds a file field to the logger.
func (l *Logger) WithFile(file string) *Logger {
	return &Logger{
		Logger: l.Logger.With("file", file),
	}
}

// LogLoad logs a dataset load operation.
func (l *Logger) LogLoad(name string, samples, modes int, elapsed time.Duration, err error) {
	if err != nil {
		l.Error("load failed",
			"dataset", name,
			"error", err,
		)
		return
	}
	l.Debug("load complete",
		"dataset", name,
		"samples", samples,
		"modes", modes,
		"elapsed", elapsed,
	)
}
