// Package logger builds the slog logger used by the demo harness:
// JSON output in prod, human-readable text elsewhere.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

func New(lvl string, environment string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(lvl),
	}

	var handler slog.Handler
	if strings.ToLower(environment) == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(
		slog.String("environment", environment),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
