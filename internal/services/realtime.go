package services

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

// realtimeService nudges every metric by a small random amount on a fixed
// interval while anyone is watching, simulating a live feed.
type realtimeService struct {
	store    metricStore
	hub      broadcaster
	interval time.Duration
	random   func() float64
	clockNow func() time.Time
}

func NewRealtimeService(store metricStore, hub broadcaster, interval time.Duration) *realtimeService {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &realtimeService{
		store:    store,
		hub:      hub,
		interval: interval,
		random:   rand.Float64,
		clockNow: time.Now,
	}
}

// Run ticks until ctx is cancelled.
func (s *realtimeService) Run(ctx context.Context) {
	log := logger.FromContext(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.hub.ClientCount() == 0 {
				continue
			}
			if err := s.Tick(ctx); err != nil {
				log.Error("metric tick failed", "error", err)
			}
		}
	}
}

// Tick applies one round of variation to every metric, persists it and
// broadcasts each updated metric.
func (s *realtimeService) Tick(ctx context.Context) error {
	metrics, err := s.store.List(ctx, metricListLimit)
	if err != nil {
		return err
	}

	now := s.clockNow()
	for _, m := range metrics {
		old := m.Value
		variation := (s.random() - 0.5) * 0.02
		m.Value = old * (1 + variation)
		m.Change = percentChange(old, m.Value)
		m.Trend = trendOf(m.Change)
		m.Timestamp = now

		if err := s.store.Update(ctx, m); err != nil {
			return err
		}
		s.hub.Broadcast(dto.RealtimeMessage{Type: dto.MessageMetricUpdate, Data: m})
	}
	logger.FromContext(ctx).Debug("metrics ticked", "count", len(metrics))
	return nil
}

func percentChange(old, cur float64) float64 {
	if old == 0 {
		return 0
	}
	return (cur - old) / old * 100
}

func trendOf(change float64) string {
	switch {
	case change > 1:
		return models.TrendUp
	case change < -1:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}
