package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/internal/response"
)

type mlService interface {
	ListInsights(ctx context.Context) ([]*models.Insight, error)
	Predict(ctx context.Context, req dto.PredictRequest) (dto.PredictResponse, error)
	DetectAnomalies(ctx context.Context, req dto.AnomalyRequest) (dto.AnomalyResponse, error)
}

type mlHandlers struct {
	ResponseHandler response.ResponseHandler
	MLSvc           mlService
}

func NewMLHandlers(deps *Deps) *mlHandlers {
	return &mlHandlers{
		ResponseHandler: deps.ResponseHandler,
		MLSvc:           deps.MLSvc,
	}
}

func (h *mlHandlers) MLRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/insights", h.ListInsights)
	r.Post("/predict", h.Predict)
	r.Post("/anomaly-detection", h.DetectAnomalies)
	return r
}

func (h *mlHandlers) ListInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.MLSvc.ListInsights(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if insights == nil {
		insights = []*models.Insight{}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, insights)
}

func (h *mlHandlers) Predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	res, err := h.MLSvc.Predict(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *mlHandlers) DetectAnomalies(w http.ResponseWriter, r *http.Request) {
	var req dto.AnomalyRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	res, err := h.MLSvc.DetectAnomalies(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}
