package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/errs"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/pkg/helpers"
	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

const (
	insightListLimit    = 20
	predictionTimeframe = "7 days"
	anomalyThreshold    = 2.0
)

type vertexClient interface {
	GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error)
}

type metricGetter interface {
	GetMany(ctx context.Context, ids []string) ([]*models.Metric, error)
}

type mlService struct {
	metrics  metricGetter
	insights insightLister
	vertex   vertexClient
	random   func() float64
}

// NewMLService builds the insight service. vertex may be nil, in which case
// predictions always come from the local estimator.
func NewMLService(metrics metricGetter, insights insightLister, vertex vertexClient) *mlService {
	return &mlService{
		metrics:  metrics,
		insights: insights,
		vertex:   vertex,
		random:   rand.Float64,
	}
}

func (s *mlService) ListInsights(ctx context.Context) ([]*models.Insight, error) {
	return s.insights.List(ctx, insightListLimit)
}

// Predict forecasts each requested metric. The model is asked first; any
// failure there falls back to a local estimate around the current value.
func (s *mlService) Predict(ctx context.Context, req dto.PredictRequest) (dto.PredictResponse, error) {
	log := logger.FromContext(ctx)

	if len(req.MetricIDs) == 0 {
		return dto.PredictResponse{}, errs.NewValidationError("metricIds array is required")
	}
	for _, id := range req.MetricIDs {
		if strings.TrimSpace(id) == "" {
			return dto.PredictResponse{}, errs.NewValidationError("metricIds must not be blank")
		}
	}

	metrics, err := s.metrics.GetMany(ctx, req.MetricIDs)
	if err != nil {
		return dto.PredictResponse{}, err
	}
	if len(metrics) == 0 {
		return dto.PredictResponse{}, errs.NewNotFoundError("no metrics found")
	}

	if s.vertex != nil {
		preds, err := s.modelPredictions(ctx, metrics)
		if err == nil {
			return dto.PredictResponse{Predictions: preds, Source: dto.PredictionSourceModel}, nil
		}
		log.Warn("prediction model unavailable, using local estimate", "error", err)
	}

	return dto.PredictResponse{Predictions: s.mockPredictions(metrics), Source: dto.PredictionSourceMock}, nil
}

func (s *mlService) mockPredictions(metrics []*models.Metric) []dto.Prediction {
	out := make([]dto.Prediction, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, dto.Prediction{
			MetricID:       m.ID,
			CurrentValue:   m.Value,
			PredictedValue: m.Value * (1 + (s.random()*0.2 - 0.1)),
			Confidence:     0.75 + s.random()*0.2,
			Timeframe:      predictionTimeframe,
		})
	}
	return out
}

const predictSystemPrompt = `You forecast business metrics one week ahead.
Reply with a JSON array only. Each element must be an object with the fields
"metricId" (string, copied from the input), "predictedValue" (number),
"confidence" (number between 0 and 1) and "timeframe" (string).
Return exactly one element per input metric.`

type metricInput struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Change float64 `json:"change"`
	Trend  string  `json:"trend"`
}

func (s *mlService) modelPredictions(ctx context.Context, metrics []*models.Metric) ([]dto.Prediction, error) {
	inputs := make([]metricInput, 0, len(metrics))
	byID := make(map[string]*models.Metric, len(metrics))
	for _, m := range metrics {
		inputs = append(inputs, metricInput{ID: m.ID, Name: m.Name, Value: m.Value, Unit: m.Unit, Change: m.Change, Trend: m.Trend})
		byID[m.ID] = m
	}
	payload, err := json.Marshal(inputs)
	if err != nil {
		return nil, err
	}

	resp, err := s.vertex.GenerateContent(ctx, dto.VertexGenerateRequest{
		System:       predictSystemPrompt,
		UserMessage:  string(payload),
		ResponseJSON: true,
		Temperature:  helpers.Ptr[float32](0.2),
	})
	if err != nil {
		return nil, err
	}

	var raw []dto.Prediction
	if err := json.Unmarshal([]byte(resp.Text), &raw); err != nil {
		return nil, fmt.Errorf("parse model predictions: %w", err)
	}

	out := make([]dto.Prediction, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, p := range raw {
		m, ok := byID[p.MetricID]
		if !ok || seen[p.MetricID] {
			return nil, fmt.Errorf("model returned unexpected metric %q", p.MetricID)
		}
		if math.IsNaN(p.PredictedValue) || math.IsInf(p.PredictedValue, 0) {
			return nil, fmt.Errorf("model returned invalid value for %q", p.MetricID)
		}
		seen[p.MetricID] = true
		p.CurrentValue = m.Value
		p.Confidence = min(max(p.Confidence, 0), 1)
		if p.Timeframe == "" {
			p.Timeframe = predictionTimeframe
		}
		out = append(out, p)
	}
	if len(out) != len(metrics) {
		return nil, errors.New("model did not predict every metric")
	}
	return out, nil
}

// DetectAnomalies flags points more than two population standard deviations
// from the mean.
func (s *mlService) DetectAnomalies(ctx context.Context, req dto.AnomalyRequest) (dto.AnomalyResponse, error) {
	if len(req.Data) == 0 {
		return dto.AnomalyResponse{}, errs.NewValidationError("data array is required")
	}

	n := float64(len(req.Data))
	var sum float64
	for _, v := range req.Data {
		sum += v
	}
	mean := sum / n

	var sq float64
	for _, v := range req.Data {
		sq += (v - mean) * (v - mean)
	}
	std := math.Sqrt(sq / n)

	out := dto.AnomalyResponse{Anomalies: []dto.Anomaly{}, Mean: mean, StdDev: std}
	if std == 0 {
		return out, nil
	}
	for i, v := range req.Data {
		z := math.Abs((v - mean) / std)
		if z <= anomalyThreshold {
			continue
		}
		out.Anomalies = append(out.Anomalies, dto.Anomaly{
			ID:            fmt.Sprintf("anomaly-%d", i),
			Index:         i,
			Value:         v,
			ExpectedValue: mean,
			ZScore:        z,
			Severity:      severityOf(z),
		})
	}
	logger.FromContext(ctx).Info("anomaly detection", "points", len(req.Data), "anomalies", len(out.Anomalies))
	return out, nil
}

func severityOf(z float64) string {
	switch {
	case z > 3:
		return dto.SeverityHigh
	case z > 2.5:
		return dto.SeverityMedium
	default:
		return dto.SeverityLow
	}
}
