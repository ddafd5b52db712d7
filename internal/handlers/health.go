package handlers

import (
	"net/http"
	"time"

	"github.com/GregMSThompson/insights-dashboard/internal/response"
)

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
	started         time.Time
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{
		ResponseHandler: deps.ResponseHandler,
		started:         time.Now(),
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	UptimeSec int64  `json:"uptimeSec"`
}

func (h *healthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, healthResponse{
		Status:    "ok",
		UptimeSec: int64(time.Since(h.started).Seconds()),
	})
}
