package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Logger is the global slog logger instance
	Logger *slog.Logger = slog.Default()
)

// ParseLevel maps a LOG_LEVEL string to a slog level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// Init initializes the global logger from LOG_LEVEL and LOG_FORMAT.
// JSON output is the default; LOG_FORMAT=text switches to key=value lines.
func Init() {
	InitWith(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// InitWith initializes the global logger writing to w
func InitWith(w io.Writer, level, format string) {
	if level == "" {
		level = "info"
	}

	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Debug("Logger initialized", "level", level)
}

// With returns a child logger tagged with a component name
func With(component string) *slog.Logger {
	return Logger.With("component", component)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
