package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/errs"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
)

type stubMLService struct {
	predictReq dto.PredictRequest
	anomalyReq dto.AnomalyRequest
	err        error
}

func (s *stubMLService) ListInsights(_ context.Context) ([]*models.Insight, error) {
	return []*models.Insight{{ID: "i1"}}, s.err
}

func (s *stubMLService) Predict(_ context.Context, req dto.PredictRequest) (dto.PredictResponse, error) {
	s.predictReq = req
	return dto.PredictResponse{Source: dto.PredictionSourceMock}, s.err
}

func (s *stubMLService) DetectAnomalies(_ context.Context, req dto.AnomalyRequest) (dto.AnomalyResponse, error) {
	s.anomalyReq = req
	return dto.AnomalyResponse{}, s.err
}

func TestMLRoutes(t *testing.T) {
	svc := &stubMLService{}
	resp := &stubResponseHandler{}
	routes := NewMLHandlers(&Deps{ResponseHandler: resp, MLSvc: svc}).MLRoutes()

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"metricIds":["revenue","users"]}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("predict status = %d", rec.Code)
	}
	if len(svc.predictReq.MetricIDs) != 2 || svc.predictReq.MetricIDs[1] != "users" {
		t.Errorf("predict request = %+v", svc.predictReq)
	}

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/anomaly-detection", strings.NewReader(`{"data":[1,2,3]}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("anomaly status = %d", rec.Code)
	}
	if len(svc.anomalyReq.Data) != 3 {
		t.Errorf("anomaly request = %+v", svc.anomalyReq)
	}

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/insights", nil))
	if got, _ := resp.writeSuccessData.([]*models.Insight); len(got) != 1 {
		t.Errorf("insights = %#v", resp.writeSuccessData)
	}
}

func TestPredict_ValidationPassesThrough(t *testing.T) {
	svc := &stubMLService{err: errs.NewValidationError("metricIds is required")}
	resp := &stubResponseHandler{}
	h := NewMLHandlers(&Deps{ResponseHandler: resp, MLSvc: svc})

	h.Predict(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/ml/predict", strings.NewReader(`{}`)))

	var ve *errs.ValidationError
	if !errors.As(resp.handleError, &ve) {
		t.Fatalf("expected ValidationError, got %v", resp.handleError)
	}
}
