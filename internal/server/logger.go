package server

import (
	"io"
	"log/slog"

	"go.inout.gg/bastion/internal/config"
)

// NewLogger creates a logger writing to w in the configured format and level.
func NewLogger(w io.Writer, cfg *config.ApplicationConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With(slog.String("environment", cfg.Environment))
}
