package logger

import (
	"log/slog"
	"os"
)

// New returns the root structured logger for the service.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
