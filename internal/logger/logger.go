// Package logger builds the process-wide structured logger. Production
// emits JSON lines for log shipping; development gets readable text.
package logger

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/cardshow/deal-engine/internal/config"
)

// Setup builds the root logger from config and installs it as the slog
// default. Every line carries the service name so mixed streams stay
// separable.
func Setup(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With("service", "deal-engine")
	slog.SetDefault(logger)
	return logger
}

// WithSession tags a logger with the session it is serving.
func WithSession(logger *slog.Logger, id uuid.UUID) *slog.Logger {
	return logger.With("session_id", id.String())
}
