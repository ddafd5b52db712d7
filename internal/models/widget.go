package models

import (
	"time"

	"github.com/GregMSThompson/insights-dashboard/pkg/grid"
)

// Widget is a dashboard widget as stored in Firestore under
// users/{uid}/dashboard_widgets/{widgetId}.
type Widget struct {
	// DocID is the Firestore document id the widget was read from. It
	// normally equals WidgetID but is kept apart so stray documents can be
	// deleted.
	DocID     string       `firestore:"-" json:"-"`
	WidgetID  string       `firestore:"widgetId" json:"widgetId"`
	Type      string       `firestore:"type" json:"type"`
	Title     string       `firestore:"title" json:"title"`
	X         int          `firestore:"x" json:"x"`
	Y         int          `firestore:"y" json:"y"`
	Width     int          `firestore:"width" json:"width"`
	Height    int          `firestore:"height" json:"height"`
	Config    WidgetConfig `firestore:"config" json:"config"`
	CreatedAt time.Time    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time    `firestore:"updatedAt" json:"updatedAt"`
}

// WidgetConfig is the flattened storage form of a widget's configuration.
// Exactly one field is set, matching the widget type.
type WidgetConfig struct {
	MetricID  string `firestore:"metricId,omitempty" json:"metricId,omitempty"`
	ChartType string `firestore:"chartType,omitempty" json:"chartType,omitempty"`
	InsightID string `firestore:"insightId,omitempty" json:"insightId,omitempty"`
}

// ToGrid converts the stored form into the layout engine's widget.
func (w *Widget) ToGrid() grid.Widget {
	t := grid.Type(w.Type)
	var cfg grid.Config
	switch t {
	case grid.TypeMetric:
		cfg = grid.MetricConfig{MetricID: w.Config.MetricID}
	case grid.TypeChart:
		cfg = grid.ChartConfig{Kind: grid.ChartKind(w.Config.ChartType)}
	case grid.TypeInsight:
		cfg = grid.InsightConfig{InsightID: w.Config.InsightID}
	}
	return grid.Widget{
		ID:       w.WidgetID,
		Type:     t,
		Title:    w.Title,
		Position: grid.Position{X: w.X, Y: w.Y},
		Size:     grid.Size{Width: w.Width, Height: w.Height},
		Config:   cfg,
	}
}

// WidgetFromGrid builds the stored form of an engine widget. Timestamps are
// left for the store to fill.
func WidgetFromGrid(g grid.Widget) *Widget {
	w := &Widget{
		WidgetID: g.ID,
		Type:     string(g.Type),
		Title:    g.Title,
		X:        g.Position.X,
		Y:        g.Position.Y,
		Width:    g.Size.Width,
		Height:   g.Size.Height,
	}
	switch c := g.Config.(type) {
	case grid.MetricConfig:
		w.Config.MetricID = c.MetricID
	case grid.ChartConfig:
		w.Config.ChartType = string(c.Kind)
	case grid.InsightConfig:
		w.Config.InsightID = c.InsightID
	}
	return w
}
