package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Fields are extra key/value pairs attached to a log record.
type Fields map[string]any

// ParseLevel maps a configured level name onto a slog level. Unknown names
// fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// SetupLogger configures the global logger to write to stderr.
func SetupLogger(level slog.Level, format string) error {
	return SetupLoggerTo(os.Stderr, level, format)
}

// SetupLoggerTo configures the global logger to write to w. The TUI uses it
// with a log file so records never land on the alternate screen.
func SetupLoggerTo(w io.Writer, level slog.Level, format string) error {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))
		return nil
	}
	if format != "console" && format != "" {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, format)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, opts)))
	return nil
}

// LogError records err at error level alongside fields.
func LogError(err error, msg string, fields Fields) {
	emit(slog.LevelError, msg, fields, slog.Any("error", err))
}

// LogInfo records msg at info level.
func LogInfo(msg string, fields Fields) { emit(slog.LevelInfo, msg, fields) }

// LogDebug records msg at debug level.
func LogDebug(msg string, fields Fields) { emit(slog.LevelDebug, msg, fields) }

func emit(level slog.Level, msg string, fields Fields, extra ...slog.Attr) {
	attrs := extra
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	slog.LogAttrs(context.Background(), level, msg, attrs...)
}
