package models

import "time"

const (
	InsightPrediction = "prediction"
	InsightAnomaly    = "anomaly"
	InsightTrend      = "trend"
)

// Insight is a generated observation about the metrics, stored in
// ml_insights/{id}.
type Insight struct {
	ID          string    `firestore:"id" json:"id"`
	Type        string    `firestore:"type" json:"type"`
	Title       string    `firestore:"title" json:"title"`
	Description string    `firestore:"description" json:"description"`
	Confidence  float64   `firestore:"confidence" json:"confidence"`
	Timestamp   time.Time `firestore:"timestamp" json:"timestamp"`
}
