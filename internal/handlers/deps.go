package handlers

import (
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/insights-dashboard/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
	MetricSvc       metricService
	MLSvc           mlService
	Realtime        http.Handler
}
