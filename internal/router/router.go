package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/insights-dashboard/internal/handlers"
	"github.com/GregMSThompson/insights-dashboard/internal/middleware"
)

func NewRouter(deps *handlers.Deps, auth *middleware.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	hh := handlers.NewHealthHandlers(deps)
	mh := handlers.NewMetricHandlers(deps)
	mlh := handlers.NewMLHandlers(deps)
	dh := handlers.NewDashboardHandlers(deps)

	r.Get("/healthz", hh.Healthz)
	r.Mount("/metrics", mh.MetricRoutes())
	r.Mount("/ml", mlh.MLRoutes())
	r.With(auth.FirebaseAuth).Mount("/dashboard", dh.DashboardRoutes())
	if deps.Realtime != nil {
		r.Handle("/ws", deps.Realtime)
	}
	return r
}
