package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/GregMSThompson/insights-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/insights-dashboard/internal/config"
	"github.com/GregMSThompson/insights-dashboard/internal/seed"
	"github.com/GregMSThompson/insights-dashboard/internal/store"
	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	cfg := config.New()
	log := logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	ctx := logger.ToContext(context.Background(), log)

	fs, err := bootstrap.InitFirestore(ctx, cfg.ProjectID)
	exitOnError("firestore init failed", err, log)
	defer fs.Close()

	err = seed.Run(ctx, store.NewMetricStore(fs), store.NewInsightStore(fs), time.Now())
	exitOnError("seed failed", err, log)
	log.Info("seed complete")
}
