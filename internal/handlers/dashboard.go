package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/middleware"
	"github.com/GregMSThompson/insights-dashboard/internal/response"
)

type dashboardService interface {
	GridConfig() dto.GridConfigResponse
	GetDashboard(ctx context.Context, uid string) (dto.DashboardResponse, error)
	AddWidget(ctx context.Context, uid string, req dto.AddWidgetRequest) (dto.WidgetResponse, error)
	RemoveWidget(ctx context.Context, uid, widgetID string) error
	DropWidget(ctx context.Context, uid, widgetID string, req dto.DropRequest) (dto.LayoutChangeResponse, error)
	MoveWidget(ctx context.Context, uid, widgetID string, req dto.MoveWidgetRequest) (dto.LayoutChangeResponse, error)
	SuggestPosition(ctx context.Context, uid, widgetID string, req dto.MoveWidgetRequest) (dto.SuggestResponse, error)
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.Get("/grid", h.GetGridConfig)
	r.Post("/widgets", h.AddWidget)
	r.Delete("/widgets/{widgetId}", h.RemoveWidget)
	r.Post("/widgets/{widgetId}/drop", h.DropWidget)
	r.Put("/widgets/{widgetId}/position", h.MoveWidget)
	r.Post("/widgets/{widgetId}/suggest", h.SuggestPosition)
	return r
}

func (h *dashboardHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	dash, err := h.DashboardSvc.GetDashboard(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dash)
}

func (h *dashboardHandlers) GetGridConfig(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.DashboardSvc.GridConfig())
}

func (h *dashboardHandlers) AddWidget(w http.ResponseWriter, r *http.Request) {
	var req dto.AddWidgetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	widget, err := h.DashboardSvc.AddWidget(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, widget)
}

func (h *dashboardHandlers) RemoveWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	if err := h.DashboardSvc.RemoveWidget(r.Context(), uid, widgetID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

// DropWidget answers 200 for refused drops too; the body says whether the
// layout changed.
func (h *dashboardHandlers) DropWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.DropRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.DropWidget(r.Context(), uid, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *dashboardHandlers) MoveWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.MoveWidgetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.MoveWidget(r.Context(), uid, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *dashboardHandlers) SuggestPosition(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.MoveWidgetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.SuggestPosition(r.Context(), uid, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}
