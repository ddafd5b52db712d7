package models

import "time"

const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Metric is a headline business number, stored in metrics/{id}.
type Metric struct {
	ID        string    `firestore:"id" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Value     float64   `firestore:"value" json:"value"`
	Unit      string    `firestore:"unit" json:"unit"`
	Change    float64   `firestore:"change" json:"change"`
	Trend     string    `firestore:"trend" json:"trend"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func ValidTrend(t string) bool {
	switch t {
	case TrendUp, TrendDown, TrendStable:
		return true
	}
	return false
}
