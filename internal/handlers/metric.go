package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/internal/response"
)

type metricService interface {
	List(ctx context.Context) ([]*models.Metric, error)
	Get(ctx context.Context, id string) (*models.Metric, error)
	Update(ctx context.Context, id string, req dto.UpdateMetricRequest) (*models.Metric, error)
}

type metricHandlers struct {
	ResponseHandler response.ResponseHandler
	MetricSvc       metricService
}

func NewMetricHandlers(deps *Deps) *metricHandlers {
	return &metricHandlers{
		ResponseHandler: deps.ResponseHandler,
		MetricSvc:       deps.MetricSvc,
	}
}

func (h *metricHandlers) MetricRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListMetrics)
	r.Get("/{metricId}", h.GetMetric)
	r.Put("/{metricId}", h.UpdateMetric)
	return r
}

func (h *metricHandlers) ListMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.MetricSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if metrics == nil {
		metrics = []*models.Metric{}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, metrics)
}

func (h *metricHandlers) GetMetric(w http.ResponseWriter, r *http.Request) {
	metric, err := h.MetricSvc.Get(r.Context(), chi.URLParam(r, "metricId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, metric)
}

func (h *metricHandlers) UpdateMetric(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateMetricRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	metric, err := h.MetricSvc.Update(r.Context(), chi.URLParam(r, "metricId"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, metric)
}
