package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/pkg/helpers"
)

type fakeMetricReplacer struct {
	got []*models.Metric
	err error
}

func (f *fakeMetricReplacer) ReplaceAll(_ context.Context, metrics []*models.Metric) error {
	f.got = metrics
	return f.err
}

type fakeInsightReplacer struct {
	got []*models.Insight
}

func (f *fakeInsightReplacer) ReplaceAll(_ context.Context, insights []*models.Insight) error {
	f.got = insights
	return nil
}

var seedTime = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestMetrics(t *testing.T) {
	ms := Metrics(seedTime)
	if len(ms) != 6 {
		t.Fatalf("expected 6 metrics, got %d", len(ms))
	}
	if ms[0].Name != "Total Revenue" || ms[0].Value != 125000 || ms[0].Trend != models.TrendUp {
		t.Errorf("first metric = %+v", ms[0])
	}
	if ms[5].Name != "Bounce Rate" || ms[5].Change != -4.3 || ms[5].Trend != models.TrendDown {
		t.Errorf("last metric = %+v", ms[5])
	}

	ids := map[string]bool{}
	for i, m := range ms {
		if m.ID == "" || ids[m.ID] {
			t.Errorf("metric %d has empty or duplicate id %q", i, m.ID)
		}
		ids[m.ID] = true
		if i > 0 && !m.Timestamp.Before(ms[i-1].Timestamp) {
			t.Errorf("metric %d timestamp not older than previous", i)
		}
	}
}

func TestInsights(t *testing.T) {
	ins := Insights(seedTime)
	if len(ins) != 3 {
		t.Fatalf("expected 3 insights, got %d", len(ins))
	}
	want := []string{models.InsightPrediction, models.InsightAnomaly, models.InsightTrend}
	for i, in := range ins {
		if in.Type != want[i] {
			t.Errorf("insight %d type = %q, want %q", i, in.Type, want[i])
		}
		if in.Confidence <= 0 || in.Confidence >= 1 {
			t.Errorf("insight %d confidence = %v", i, in.Confidence)
		}
	}
}

func TestRun(t *testing.T) {
	m := &fakeMetricReplacer{}
	in := &fakeInsightReplacer{}

	if err := Run(helpers.TestCtx(), m, in, seedTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.got) != 6 || len(in.got) != 3 {
		t.Errorf("seeded %d metrics, %d insights", len(m.got), len(in.got))
	}
}

func TestRun_StopsOnMetricError(t *testing.T) {
	m := &fakeMetricReplacer{err: errors.New("down")}
	in := &fakeInsightReplacer{}

	if err := Run(helpers.TestCtx(), m, in, seedTime); err == nil {
		t.Fatal("expected error")
	}
	if in.got != nil {
		t.Error("insights should not be written after a metric failure")
	}
}
