package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/errs"
	"github.com/GregMSThompson/insights-dashboard/pkg/helpers"
)

type fakeVertex struct {
	text    string
	err     error
	lastReq dto.VertexGenerateRequest
	calls   int
}

func (f *fakeVertex) GenerateContent(_ context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return dto.VertexGenerateResponse{}, f.err
	}
	return dto.VertexGenerateResponse{Text: f.text}, nil
}

func TestPredict_Validation(t *testing.T) {
	svc := NewMLService(revenueStore(), sampleInsights(0), nil)
	for _, ids := range [][]string{nil, {"revenue", " "}} {
		_, err := svc.Predict(helpers.TestCtx(), dto.PredictRequest{MetricIDs: ids})
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("ids %v: expected ValidationError, got %T: %v", ids, err, err)
		}
	}
}

func TestPredict_NoMetricsFound(t *testing.T) {
	svc := NewMLService(revenueStore(), sampleInsights(0), nil)
	_, err := svc.Predict(helpers.TestCtx(), dto.PredictRequest{MetricIDs: []string{"nope"}})
	var nfe *errs.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestPredict_UsesModel(t *testing.T) {
	vertex := &fakeVertex{text: `[{"metricId":"revenue","predictedValue":130000,"confidence":1.4}]`}
	svc := NewMLService(revenueStore(), sampleInsights(0), vertex)

	got, err := svc.Predict(helpers.TestCtx(), dto.PredictRequest{MetricIDs: []string{"revenue", "missing"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != dto.PredictionSourceModel || len(got.Predictions) != 1 {
		t.Fatalf("unexpected response %+v", got)
	}
	p := got.Predictions[0]
	if p.PredictedValue != 130000 || p.CurrentValue != 125000 {
		t.Errorf("unexpected prediction %+v", p)
	}
	if p.Confidence != 1 || p.Timeframe != "7 days" {
		t.Errorf("expected clamped confidence and default timeframe, got %+v", p)
	}
	if !vertex.lastReq.ResponseJSON {
		t.Error("expected a JSON response request")
	}
}

func TestPredict_FallsBackOnModelFailure(t *testing.T) {
	tests := []struct {
		name   string
		vertex *fakeVertex
	}{
		{"call error", &fakeVertex{err: errors.New("unavailable")}},
		{"bad json", &fakeVertex{text: "not json"}},
		{"unknown metric", &fakeVertex{text: `[{"metricId":"other","predictedValue":1}]`}},
		{"missing metric", &fakeVertex{text: `[]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMLService(revenueStore(), sampleInsights(0), tt.vertex)
			svc.random = func() float64 { return 0.5 }

			got, err := svc.Predict(helpers.TestCtx(), dto.PredictRequest{MetricIDs: []string{"revenue"}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Source != dto.PredictionSourceMock || len(got.Predictions) != 1 {
				t.Fatalf("unexpected response %+v", got)
			}
			p := got.Predictions[0]
			if p.PredictedValue != 125000 || p.Confidence != 0.85 || p.Timeframe != "7 days" {
				t.Errorf("unexpected mock prediction %+v", p)
			}
		})
	}
}

func TestPredict_MockRange(t *testing.T) {
	svc := NewMLService(revenueStore(), sampleInsights(0), nil)
	for i := 0; i < 200; i++ {
		got, err := svc.Predict(helpers.TestCtx(), dto.PredictRequest{MetricIDs: []string{"users"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p := got.Predictions[0]
		if p.PredictedValue < 15420*0.9 || p.PredictedValue > 15420*1.1 {
			t.Fatalf("predicted value %v outside ±10%%", p.PredictedValue)
		}
		if p.Confidence < 0.75 || p.Confidence > 0.95 {
			t.Fatalf("confidence %v outside [0.75, 0.95]", p.Confidence)
		}
	}
}

func TestDetectAnomalies(t *testing.T) {
	svc := NewMLService(revenueStore(), sampleInsights(0), nil)
	data := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 100}

	got, err := svc.DetectAnomalies(helpers.TestCtx(), dto.AnomalyRequest{Data: data})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %+v", got.Anomalies)
	}
	a := got.Anomalies[0]
	if a.ID != "anomaly-19" || a.Index != 19 || a.Value != 100 || a.Severity != dto.SeverityHigh {
		t.Errorf("unexpected anomaly %+v", a)
	}
	if a.ExpectedValue != got.Mean || got.Mean != 14.5 {
		t.Errorf("mean = %v, expected value = %v", got.Mean, a.ExpectedValue)
	}
}

func TestDetectAnomalies_FlatSeries(t *testing.T) {
	svc := NewMLService(revenueStore(), sampleInsights(0), nil)
	got, err := svc.DetectAnomalies(helpers.TestCtx(), dto.AnomalyRequest{Data: []float64{5, 5, 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Anomalies) != 0 {
		t.Fatalf("expected no anomalies, got %+v", got.Anomalies)
	}
}

func TestDetectAnomalies_Empty(t *testing.T) {
	svc := NewMLService(revenueStore(), sampleInsights(0), nil)
	_, err := svc.DetectAnomalies(helpers.TestCtx(), dto.AnomalyRequest{})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestSeverityOf(t *testing.T) {
	tests := map[float64]string{2.1: dto.SeverityLow, 2.5: dto.SeverityLow, 2.6: dto.SeverityMedium, 3: dto.SeverityMedium, 3.1: dto.SeverityHigh}
	for z, want := range tests {
		if got := severityOf(z); got != want {
			t.Errorf("severityOf(%v) = %q, want %q", z, got, want)
		}
	}
}

func TestListInsights_UsesLimit(t *testing.T) {
	svc := NewMLService(revenueStore(), sampleInsights(30), nil)
	got, err := svc.ListInsights(helpers.TestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("expected 20 insights, got %d", len(got))
	}
}
