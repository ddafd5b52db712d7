package helpers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

// TestCtx returns a context whose logger discards output, for service and
// handler tests.
func TestCtx() context.Context {
	return logger.ToContext(context.Background(), slog.New(logger.NewTestHandler(slog.LevelDebug)))
}
