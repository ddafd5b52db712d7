package services

import (
	"context"
	"fmt"
	"time"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/errs"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/pkg/helpers"
	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

const metricListLimit = 100

type metricStore interface {
	List(ctx context.Context, limit int) ([]*models.Metric, error)
	Get(ctx context.Context, id string) (*models.Metric, error)
	GetMany(ctx context.Context, ids []string) ([]*models.Metric, error)
	Update(ctx context.Context, m *models.Metric) error
}

// broadcaster pushes a message to every connected realtime client.
type broadcaster interface {
	Broadcast(msg dto.RealtimeMessage)
	ClientCount() int
}

type metricService struct {
	store    metricStore
	hub      broadcaster
	clockNow func() time.Time
}

func NewMetricService(store metricStore, hub broadcaster) *metricService {
	return &metricService{
		store:    store,
		hub:      hub,
		clockNow: time.Now,
	}
}

// List returns the latest metrics, newest first.
func (s *metricService) List(ctx context.Context) ([]*models.Metric, error) {
	return s.store.List(ctx, metricListLimit)
}

func (s *metricService) Get(ctx context.Context, id string) (*models.Metric, error) {
	return s.store.Get(ctx, id)
}

// Update overwrites the given fields of a metric and pushes the result to
// realtime clients.
func (s *metricService) Update(ctx context.Context, id string, req dto.UpdateMetricRequest) (*models.Metric, error) {
	if req.Trend != nil && !models.ValidTrend(*req.Trend) {
		return nil, errs.NewValidationError(fmt.Sprintf("invalid trend %q", *req.Trend))
	}

	m, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Value = helpers.ValueOr(req.Value, m.Value)
	m.Change = helpers.ValueOr(req.Change, m.Change)
	m.Trend = helpers.ValueOr(req.Trend, m.Trend)
	m.Timestamp = s.clockNow()

	if err := s.store.Update(ctx, m); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("metric updated", "metric_id", id, "value", m.Value)

	if s.hub != nil {
		s.hub.Broadcast(dto.RealtimeMessage{Type: dto.MessageMetricUpdate, Data: m})
	}
	return m, nil
}
