package dto

type PredictRequest struct {
	MetricIDs []string `json:"metricIds"`
}

type Prediction struct {
	MetricID       string  `json:"metricId"`
	CurrentValue   float64 `json:"currentValue"`
	PredictedValue float64 `json:"predictedValue"`
	Confidence     float64 `json:"confidence"`
	Timeframe      string  `json:"timeframe"`
}

type PredictResponse struct {
	Predictions []Prediction `json:"predictions"`
	Source      string       `json:"source"`
}

const (
	PredictionSourceModel = "model"
	PredictionSourceMock  = "mock"
)

type AnomalyRequest struct {
	Data []float64 `json:"data"`
}

type Anomaly struct {
	ID            string  `json:"id"`
	Index         int     `json:"index"`
	Value         float64 `json:"value"`
	ExpectedValue float64 `json:"expectedValue"`
	ZScore        float64 `json:"zScore"`
	Severity      string  `json:"severity"`
}

type AnomalyResponse struct {
	Anomalies []Anomaly `json:"anomalies"`
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"stdDev"`
}

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)
