package dto

type UpdateMetricRequest struct {
	Value  *float64 `json:"value"`
	Change *float64 `json:"change"`
	Trend  *string  `json:"trend"`
}

// RealtimeMessage is the envelope pushed over the realtime feed.
type RealtimeMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

const (
	MessageMetricsUpdate  = "metrics-update"
	MessageMetricUpdate   = "metric-update"
	MessageRequestMetrics = "request-metrics"
)
