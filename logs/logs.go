// Package logs builds the process root logger.
package logs

import (
	"log/slog"
	"os"
	"strings"
)

// FromLevel returns a text slog.Logger writing to stderr at the given
// level. Unknown strings fall back to Info so a misconfigured deployment
// still logs rather than going silent.
func FromLevel(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
