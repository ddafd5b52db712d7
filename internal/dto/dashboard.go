package dto

import (
	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/pkg/grid"
)

// --- Request types ---

type AddWidgetRequest struct {
	Type  string     `json:"type"`
	Title string     `json:"title,omitempty"`
	Size  *grid.Size `json:"size,omitempty"`
}

// DropRequest carries the pointer position at release and the rendered grid
// geometry the client measured at that moment.
type DropRequest struct {
	Pointer grid.Point   `json:"pointer"`
	Surface grid.Surface `json:"surface"`
}

type MoveWidgetRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// --- Response types ---

type DashboardResponse struct {
	Columns int              `json:"columns"`
	Widgets []WidgetResponse `json:"widgets"`
}

// LayoutChangeResponse reports the outcome of a drop or move. A rejected
// drop is not an error: Accepted is false and Reason says why.
type LayoutChangeResponse struct {
	Accepted bool            `json:"accepted"`
	Reason   string          `json:"reason,omitempty"`
	Widget   *WidgetResponse `json:"widget,omitempty"`
}

type SuggestResponse struct {
	Found    bool           `json:"found"`
	Position *grid.Position `json:"position,omitempty"`
}

type GridConfigResponse struct {
	Columns          int     `json:"columns"`
	Gap              float64 `json:"gap"`
	DefaultRowHeight float64 `json:"defaultRowHeight"`
	MaxScanRows      int     `json:"maxScanRows"`
}

// Rejection reasons reported in LayoutChangeResponse.Reason.
const (
	ReasonCollision   = "collision"
	ReasonOutOfBounds = "out_of_bounds"
	ReasonNoGeometry  = "measurement_unavailable"
)

// WidgetResponse is a widget as the client renders it.
type WidgetResponse struct {
	WidgetID string              `json:"widgetId"`
	Type     string              `json:"type"`
	Title    string              `json:"title"`
	X        int                 `json:"x"`
	Y        int                 `json:"y"`
	Width    int                 `json:"width"`
	Height   int                 `json:"height"`
	Config   models.WidgetConfig `json:"config"`
}

func NewWidgetResponse(g grid.Widget) WidgetResponse {
	w := models.WidgetFromGrid(g)
	return WidgetResponse{
		WidgetID: w.WidgetID,
		Type:     w.Type,
		Title:    w.Title,
		X:        w.X,
		Y:        w.Y,
		Width:    w.Width,
		Height:   w.Height,
		Config:   w.Config,
	}
}
