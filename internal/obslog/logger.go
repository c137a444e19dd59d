// Package obslog provides the allocator's ambient structured logging: a
// package-level logger that discards everything until an embedding
// application opts in, following the same L-discards-by-default idiom as
// the teacher's cmd/hiveexplorer/logger package (minus its CLI-specific
// log-file rotation, which has no counterpart here since this module is a
// library, not a CLI).
package obslog

import (
	"io"
	"log/slog"
)

// L is the package-level logger. It discards everything by default so the
// engine can log freely without imposing output on embedders that never
// call SetOutput.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetOutput points L at w at the given minimum level. Passing a nil w
// restores the discard default.
func SetOutput(w io.Writer, level slog.Level) {
	if w == nil {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
