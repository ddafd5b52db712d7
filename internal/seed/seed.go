// Package seed loads the demo metrics and insights the dashboard starts with.
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

type metricReplacer interface {
	ReplaceAll(ctx context.Context, metrics []*models.Metric) error
}

type insightReplacer interface {
	ReplaceAll(ctx context.Context, insights []*models.Insight) error
}

// Metrics returns the demo metrics stamped with now. Each run gets fresh ids.
func Metrics(now time.Time) []*models.Metric {
	rows := []struct {
		name   string
		value  float64
		unit   string
		change float64
		trend  string
	}{
		{"Total Revenue", 125000, "USD", 12.5, models.TrendUp},
		{"Active Users", 15420, "users", 8.3, models.TrendUp},
		{"Conversion Rate", 3.45, "%", -2.1, models.TrendDown},
		{"Average Order Value", 89.50, "USD", 5.7, models.TrendUp},
		{"Page Views", 245000, "views", 15.2, models.TrendUp},
		{"Bounce Rate", 32.1, "%", -4.3, models.TrendDown},
	}

	out := make([]*models.Metric, 0, len(rows))
	for i, r := range rows {
		// keep the list order stable under "timestamp desc"
		ts := now.Add(-time.Duration(i) * time.Millisecond)
		out = append(out, &models.Metric{
			ID:        uuid.NewString(),
			Name:      r.name,
			Value:     r.value,
			Unit:      r.unit,
			Change:    r.change,
			Trend:     r.trend,
			Timestamp: ts,
			UpdatedAt: ts,
		})
	}
	return out
}

func Insights(now time.Time) []*models.Insight {
	rows := []models.Insight{
		{
			Type:        models.InsightPrediction,
			Title:       "Revenue Growth Forecast",
			Description: "Based on current trends, revenue is expected to increase by 15% over the next quarter.",
			Confidence:  0.87,
		},
		{
			Type:        models.InsightAnomaly,
			Title:       "Unusual Traffic Spike Detected",
			Description: "Detected an unexpected 45% increase in page views during off-peak hours.",
			Confidence:  0.92,
		},
		{
			Type:        models.InsightTrend,
			Title:       "User Engagement Rising",
			Description: "User engagement metrics show a consistent upward trend over the past 30 days.",
			Confidence:  0.78,
		},
	}

	out := make([]*models.Insight, 0, len(rows))
	for i := range rows {
		in := rows[i]
		in.ID = uuid.NewString()
		in.Timestamp = now.Add(-time.Duration(i) * time.Millisecond)
		out = append(out, &in)
	}
	return out
}

// Run replaces the stored metrics and insights with the demo set.
func Run(ctx context.Context, metrics metricReplacer, insights insightReplacer, now time.Time) error {
	log := logger.FromContext(ctx)

	ms := Metrics(now)
	if err := metrics.ReplaceAll(ctx, ms); err != nil {
		return err
	}
	log.Info("seeded metrics", "count", len(ms))

	ins := Insights(now)
	if err := insights.ReplaceAll(ctx, ins); err != nil {
		return err
	}
	log.Info("seeded insights", "count", len(ins))
	return nil
}
