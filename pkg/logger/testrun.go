package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler discards all output.
func NewTestHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
}
