package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/errs"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/pkg/grid"
	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

// dashboardStore is the Firestore storage interface for widgets.
type dashboardStore interface {
	List(ctx context.Context, uid string) ([]*models.Widget, error)
	Create(ctx context.Context, uid string, w *models.Widget) error
	CreateBatch(ctx context.Context, uid string, widgets []*models.Widget) error
	UpdatePosition(ctx context.Context, uid, widgetID string, pos grid.Position) error
	BulkUpdatePositions(ctx context.Context, uid string, positions map[string]grid.Position) error
	Delete(ctx context.Context, uid, widgetID string) error
	DeleteMany(ctx context.Context, uid string, docIDs []string) error
}

type metricLister interface {
	List(ctx context.Context, limit int) ([]*models.Metric, error)
}

type insightLister interface {
	List(ctx context.Context, limit int) ([]*models.Insight, error)
}

// Default widget sizes per type.
var defaultSizes = map[grid.Type]grid.Size{
	grid.TypeMetric:  {Width: 2, Height: 2},
	grid.TypeChart:   {Width: 4, Height: 3},
	grid.TypeInsight: {Width: 4, Height: 2},
}

var chartTitles = map[grid.ChartKind]string{
	grid.ChartLine:    "Revenue Trend",
	grid.ChartBar:     "Monthly Sales",
	grid.ChartScatter: "Data Correlation",
	grid.ChartHeatmap: "Weekly Activity",
}

// session holds one user's live layout. layout is nil until loaded and is
// reset to nil whenever a store write fails, so the next access reloads the
// persisted state.
type session struct {
	mu     sync.Mutex
	layout *grid.Layout
}

type dashboardService struct {
	store    dashboardStore
	metrics  metricLister
	insights insightLister
	columns  int
	gap      float64

	mu       sync.Mutex
	sessions map[string]*session
}

func NewDashboardService(store dashboardStore, metrics metricLister, insights insightLister, columns int, gap float64) *dashboardService {
	if columns <= 0 {
		columns = grid.DefaultColumns
	}
	if gap <= 0 {
		gap = grid.DefaultGap
	}
	return &dashboardService{
		store:    store,
		metrics:  metrics,
		insights: insights,
		columns:  columns,
		gap:      gap,
		sessions: make(map[string]*session),
	}
}

// --- Public service methods ---

func (s *dashboardService) GridConfig() dto.GridConfigResponse {
	return dto.GridConfigResponse{
		Columns:          s.columns,
		Gap:              s.gap,
		DefaultRowHeight: grid.DefaultRowHeight,
		MaxScanRows:      grid.MaxScanRows,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, uid string) (dto.DashboardResponse, error) {
	var out dto.DashboardResponse
	err := s.withLayout(ctx, uid, func(sess *session) error {
		out = dashboardResponse(sess.layout)
		return nil
	})
	return out, err
}

func (s *dashboardService) AddWidget(ctx context.Context, uid string, req dto.AddWidgetRequest) (dto.WidgetResponse, error) {
	t := grid.Type(req.Type)
	if !t.Valid() {
		return dto.WidgetResponse{}, errs.NewValidationError(fmt.Sprintf("unknown widget type %q", req.Type))
	}
	size := defaultSizes[t]
	if req.Size != nil {
		size = *req.Size
	}

	var out dto.WidgetResponse
	err := s.withLayout(ctx, uid, func(sess *session) error {
		cfg, title, err := s.bindWidget(ctx, sess.layout, t)
		if err != nil {
			return err
		}
		if req.Title != "" {
			title = req.Title
		}

		w, err := sess.layout.Add(t, title, size, cfg)
		if err != nil {
			return errs.NewValidationError(err.Error())
		}
		if err := s.store.Create(ctx, uid, models.WidgetFromGrid(w)); err != nil {
			sess.invalidate()
			return err
		}

		logger.FromContext(ctx).Info("widget added",
			"widget_id", w.ID, "type", w.Type, "x", w.Position.X, "y", w.Position.Y)
		out = dto.NewWidgetResponse(w)
		return nil
	})
	return out, err
}

// RemoveWidget deletes a widget. Removing a widget that is not on the
// dashboard is a no-op.
func (s *dashboardService) RemoveWidget(ctx context.Context, uid, widgetID string) error {
	return s.withLayout(ctx, uid, func(sess *session) error {
		if !sess.layout.Remove(widgetID) {
			return nil
		}
		if err := s.store.Delete(ctx, uid, widgetID); err != nil {
			sess.invalidate()
			return err
		}
		logger.FromContext(ctx).Info("widget removed", "widget_id", widgetID)
		return nil
	})
}

// DropWidget commits a pointer drop. A drop the grid refuses is reported as
// not accepted, with the layout unchanged.
func (s *dashboardService) DropWidget(ctx context.Context, uid, widgetID string, req dto.DropRequest) (dto.LayoutChangeResponse, error) {
	return s.changePosition(ctx, uid, widgetID, false, func(l *grid.Layout) (grid.Widget, error) {
		return l.Drop(widgetID, req.Pointer, req.Surface)
	})
}

// MoveWidget places a widget at an explicit cell. Unlike a drop, a refused
// move is a ConflictError.
func (s *dashboardService) MoveWidget(ctx context.Context, uid, widgetID string, req dto.MoveWidgetRequest) (dto.LayoutChangeResponse, error) {
	return s.changePosition(ctx, uid, widgetID, true, func(l *grid.Layout) (grid.Widget, error) {
		return l.MoveTo(widgetID, grid.Position{X: req.X, Y: req.Y})
	})
}

// SuggestPosition reports where the widget could go at or next to the
// requested cell. It never changes the layout.
func (s *dashboardService) SuggestPosition(ctx context.Context, uid, widgetID string, req dto.MoveWidgetRequest) (dto.SuggestResponse, error) {
	var out dto.SuggestResponse
	err := s.withLayout(ctx, uid, func(sess *session) error {
		pos, ok, err := sess.layout.Suggest(widgetID, grid.Position{X: req.X, Y: req.Y})
		if err != nil {
			return translateGridError(err)
		}
		out.Found = ok
		if ok {
			out.Position = &pos
		}
		return nil
	})
	return out, err
}

// --- Internals ---

func (sess *session) invalidate() { sess.layout = nil }

func (s *dashboardService) session(uid string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[uid]
	if !ok {
		sess = &session{}
		s.sessions[uid] = sess
	}
	return sess
}

// withLayout runs fn with the user's session locked and its layout loaded.
func (s *dashboardService) withLayout(ctx context.Context, uid string, fn func(sess *session) error) error {
	sess := s.session(uid)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.layout == nil {
		l, err := s.load(ctx, uid)
		if err != nil {
			return err
		}
		sess.layout = l
	}
	return fn(sess)
}

func (s *dashboardService) changePosition(ctx context.Context, uid, widgetID string, strict bool, move func(l *grid.Layout) (grid.Widget, error)) (dto.LayoutChangeResponse, error) {
	var out dto.LayoutChangeResponse
	err := s.withLayout(ctx, uid, func(sess *session) error {
		log := logger.FromContext(ctx)
		before, _ := sess.layout.Get(widgetID)

		w, err := move(sess.layout)
		if err != nil {
			reason := rejectionReason(err)
			if reason == "" {
				return translateGridError(err)
			}
			log.Warn("layout change rejected", "widget_id", widgetID, "reason", reason)
			if strict {
				return errs.NewConflictError("widget cannot be placed there", reason)
			}
			out.Reason = reason
			return nil
		}

		if w.Position != before.Position {
			if err := s.store.UpdatePosition(ctx, uid, widgetID, w.Position); err != nil {
				sess.invalidate()
				return err
			}
		}
		log.Info("layout change accepted", "widget_id", widgetID, "x", w.Position.X, "y", w.Position.Y)
		resp := dto.NewWidgetResponse(w)
		out.Accepted = true
		out.Widget = &resp
		return nil
	})
	return out, err
}

// load reads the user's widgets, repairing any stored set that breaks the
// layout rules. An empty dashboard gets the default layout.
func (s *dashboardService) load(ctx context.Context, uid string) (*grid.Layout, error) {
	log := logger.FromContext(ctx)

	stored, err := s.store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return s.seed(ctx, uid)
	}

	widgets := make([]grid.Widget, 0, len(stored))
	for _, w := range stored {
		widgets = append(widgets, w.ToGrid())
	}
	kept, moved, dropped := grid.Repair(s.columns, widgets)

	if len(moved) > 0 {
		positions := make(map[string]grid.Position, len(moved))
		for _, w := range kept {
			for _, id := range moved {
				if w.ID == id {
					positions[id] = w.Position
				}
			}
		}
		log.Warn("repaired stored layout", "uid", uid, "moved", moved)
		if err := s.store.BulkUpdatePositions(ctx, uid, positions); err != nil {
			return nil, err
		}
	}
	if len(dropped) > 0 {
		docIDs := make([]string, 0, len(dropped))
		for _, i := range dropped {
			if id := stored[i].DocID; id != "" {
				docIDs = append(docIDs, id)
			}
		}
		log.Warn("dropped unplaceable widgets", "uid", uid, "doc_ids", docIDs)
		if err := s.store.DeleteMany(ctx, uid, docIDs); err != nil {
			return nil, err
		}
	}

	l, err := grid.NewLayout(s.columns, kept...)
	if err != nil {
		return nil, fmt.Errorf("build layout for %s: %w", uid, err)
	}
	return l, nil
}

func (s *dashboardService) seed(ctx context.Context, uid string) (*grid.Layout, error) {
	metrics, err := s.metrics.List(ctx, 4)
	if err != nil {
		return nil, err
	}
	insights, err := s.insights.List(ctx, 2)
	if err != nil {
		return nil, err
	}

	kept, _, _ := grid.Repair(s.columns, defaultWidgets(metrics, insights))
	stored := make([]*models.Widget, 0, len(kept))
	for _, w := range kept {
		stored = append(stored, models.WidgetFromGrid(w))
	}
	if err := s.store.CreateBatch(ctx, uid, stored); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("seeded default dashboard", "uid", uid, "widgets", len(kept))

	l, err := grid.NewLayout(s.columns, kept...)
	if err != nil {
		return nil, fmt.Errorf("build default layout: %w", err)
	}
	return l, nil
}

// defaultWidgets is the starting dashboard: a row of metric tiles, a 2x2
// block of charts and a row of insights.
func defaultWidgets(metrics []*models.Metric, insights []*models.Insight) []grid.Widget {
	var out []grid.Widget
	for i, m := range metrics {
		if i == 4 {
			break
		}
		out = append(out, grid.Widget{
			ID:       "metric-" + m.ID,
			Type:     grid.TypeMetric,
			Title:    m.Name,
			Position: grid.Position{X: i * 2, Y: 0},
			Size:     defaultSizes[grid.TypeMetric],
			Config:   grid.MetricConfig{MetricID: m.ID},
		})
	}

	chartSpots := []grid.Position{{X: 0, Y: 2}, {X: 4, Y: 2}, {X: 0, Y: 5}, {X: 4, Y: 5}}
	for i, kind := range grid.ChartKinds {
		out = append(out, grid.Widget{
			ID:       "chart-" + string(kind),
			Type:     grid.TypeChart,
			Title:    chartTitles[kind],
			Position: chartSpots[i],
			Size:     defaultSizes[grid.TypeChart],
			Config:   grid.ChartConfig{Kind: kind},
		})
	}

	for i, in := range insights {
		if i == 2 {
			break
		}
		out = append(out, grid.Widget{
			ID:       "insight-" + in.ID,
			Type:     grid.TypeInsight,
			Title:    in.Title,
			Position: grid.Position{X: i * 4, Y: 8},
			Size:     defaultSizes[grid.TypeInsight],
			Config:   grid.InsightConfig{InsightID: in.ID},
		})
	}
	return out
}

// bindWidget picks the data a new widget shows and its default title.
func (s *dashboardService) bindWidget(ctx context.Context, l *grid.Layout, t grid.Type) (grid.Config, string, error) {
	switch t {
	case grid.TypeMetric:
		metrics, err := s.metrics.List(ctx, 1)
		if err != nil {
			return nil, "", err
		}
		if len(metrics) == 0 {
			return nil, "", errs.NewValidationError("no metrics available")
		}
		return grid.MetricConfig{MetricID: metrics[0].ID}, metrics[0].Name, nil

	case grid.TypeInsight:
		insights, err := s.insights.List(ctx, 1)
		if err != nil {
			return nil, "", err
		}
		if len(insights) == 0 {
			return nil, "", errs.NewValidationError("no insights available")
		}
		return grid.InsightConfig{InsightID: insights[0].ID}, insights[0].Title, nil

	default:
		charts := 0
		for _, w := range l.Widgets() {
			if w.Type == grid.TypeChart {
				charts++
			}
		}
		kind := grid.ChartKinds[charts%len(grid.ChartKinds)]
		return grid.ChartConfig{Kind: kind}, chartTitles[kind], nil
	}
}

func dashboardResponse(l *grid.Layout) dto.DashboardResponse {
	widgets := l.Widgets()
	out := dto.DashboardResponse{
		Columns: l.Columns(),
		Widgets: make([]dto.WidgetResponse, 0, len(widgets)),
	}
	for _, w := range widgets {
		out.Widgets = append(out.Widgets, dto.NewWidgetResponse(w))
	}
	return out
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, grid.ErrCollisionDetected):
		return dto.ReasonCollision
	case errors.Is(err, grid.ErrOutOfBounds):
		return dto.ReasonOutOfBounds
	case errors.Is(err, grid.ErrMeasurementUnavailable):
		return dto.ReasonNoGeometry
	}
	return ""
}

func translateGridError(err error) error {
	if errors.Is(err, grid.ErrWidgetNotFound) {
		return errs.NewNotFoundError("widget not found")
	}
	return err
}

