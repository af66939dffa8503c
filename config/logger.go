package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Production (GO_ENV) emits JSON lines
// for log shipping; everything else gets human-readable text. LOG_LEVEL
// accepts debug, info, warn, or error and defaults to info.
func NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "jamqueuepro")
}
