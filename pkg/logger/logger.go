// Package logger wraps log/slog behind a process-wide default with a small
// set of constructors for the daemon's output formats.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Default is the process-wide logger. Overwritten by SetDefault.
var Default *slog.Logger

func init() {
	Default = New("info", os.Stdout)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a structured JSON logger at the given level
func New(level string, output io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

// NewText creates a plain-text logger at the given level
func NewText(level string, output io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

// NewDev creates a colorized logger for interactive development use
func NewDev(level string, output io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(output, &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: time.Kitchen,
	}))
}

// SetDefault replaces the package default and the slog default together
func SetDefault(logger *slog.Logger) {
	Default = logger
	slog.SetDefault(logger)
}

// Debug logs a debug message on the default logger
func Debug(msg string, args ...any) {
	Default.Debug(msg, args...)
}

// Info logs an info message on the default logger
func Info(msg string, args ...any) {
	Default.Info(msg, args...)
}

// Warn logs a warning on the default logger
func Warn(msg string, args ...any) {
	Default.Warn(msg, args...)
}

// Error logs an error on the default logger
func Error(msg string, args ...any) {
	Default.Error(msg, args...)
}

// With returns a child of the default logger carrying extra attributes
func With(args ...any) *slog.Logger {
	return Default.With(args...)
}
