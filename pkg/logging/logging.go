// Package logging configures the slog handler used throughout the module.
// The rest of the codebase calls slog package-level functions and
// slog.With directly, the same way the rest of the corpus does; this
// package only wires up the handler once, at process start.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Format selects the handler Setup installs.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// Setup installs a slog handler at the given level and format as the
// process-wide default logger, and returns it for callers that want a
// scoped instance instead of relying on the package-level default.
func Setup(level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// LevelFromEnv maps a LOG_LEVEL-style value (debug, info, warn, error,
// case-insensitive) to a slog.Level, defaulting to Info for an empty or
// unrecognised value. It does not read the environment itself.
func LevelFromEnv(value string) slog.Level {
	switch strings.ToLower(value) {
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
