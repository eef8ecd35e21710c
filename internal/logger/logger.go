package logger

import (
	"log/slog"
	"os"
)

type Logger struct {
	*slog.Logger
}

// New returns a logger configured for the given environment: JSON at info
// level for prod, text at debug level everywhere else.
func New(env string) *Logger {
	var handler slog.Handler

	switch env {
	case "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	return &Logger{slog.New(handler)}
}
