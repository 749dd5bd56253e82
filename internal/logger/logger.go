package logger

import (
	"log/slog"
	"os"
)

// New creates the shared slog.Logger. Output is JSON on stdout so the
// container runtime collects it without extra configuration.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "teremok"))
}
