package logger

import (
	"log/slog"
	"os"
)

// New creates the application-wide JSON logger. Every line carries the
// service attribute so the lifecycle engine is separable from the rest of
// the platform in aggregated output.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "docflow"))
}
