package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/insights-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/insights-dashboard/internal/config"
	"github.com/GregMSThompson/insights-dashboard/internal/handlers"
	"github.com/GregMSThompson/insights-dashboard/internal/middleware"
	"github.com/GregMSThompson/insights-dashboard/internal/realtime"
	"github.com/GregMSThompson/insights-dashboard/internal/response"
	"github.com/GregMSThompson/insights-dashboard/internal/router"
	"github.com/GregMSThompson/insights-dashboard/internal/services"
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
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	dstore := store.NewDashboardStore(bs.Firestore)
	mstore := store.NewMetricStore(bs.Firestore)
	istore := store.NewInsightStore(bs.Firestore)

	// realtime
	hub := realtime.NewHub(bs.Log, mstore)
	defer hub.Close()

	// services
	dserv := services.NewDashboardService(dstore, mstore, istore, cfg.GridColumns, cfg.GridGap)
	mserv := services.NewMetricService(mstore, hub)
	rtserv := services.NewRealtimeService(mstore, hub, cfg.MetricTick)

	mlserv := services.NewMLService(mstore, istore, nil)
	if bs.VertexAdapter != nil {
		mlserv = services.NewMLService(mstore, istore, bs.VertexAdapter)
	}

	// auth; a nil verifier serves every request as the local user
	auth := middleware.NewMiddleware(nil)
	if bs.Firebase != nil {
		auth = middleware.NewMiddleware(bs.Firebase)
	}

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(bs.Log)
	deps.DashboardSvc = dserv
	deps.MetricSvc = mserv
	deps.MLSvc = mlserv
	deps.Realtime = hub

	go rtserv.Run(logger.ToContext(ctx, bs.Log.With("component", "realtime")))

	// router
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps, auth),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	bs.Log.Info("server listening", "port", cfg.Port)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	exitOnError("server start failed", err, bs.Log)
}
