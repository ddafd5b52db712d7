package grid

import "fmt"

// DefaultRowHeight is the row height estimate used when no rendered widget
// is available to measure.
const DefaultRowHeight = 150.0

// Sample is one rendered widget's bounding box and cell span, used to back
// out the real per-cell pixel size.
type Sample struct {
	Rect       Rect `json:"rect"`
	ColumnSpan int  `json:"columnSpan"`
	RowSpan    int  `json:"rowSpan"`
}

// Surface is the rendered grid as reported by the client: the container box,
// the CSS gap, the column count and optionally one sampled widget.
type Surface struct {
	Container Rect    `json:"container"`
	Gap       float64 `json:"gap"`
	Columns   int     `json:"columns"`
	Sample    *Sample `json:"sample,omitempty"`
}

// Measure derives the cell geometry. Columns are sized by dividing the
// container width evenly; rows default to DefaultRowHeight. A usable sample
// refines both. A malformed sample is ignored and the even-division
// estimate stands.
func (s Surface) Measure() (Measurement, error) {
	if s.Container.Width <= 0 || s.Container.Height <= 0 {
		return Measurement{}, fmt.Errorf("%w: container has zero size", ErrMeasurementUnavailable)
	}
	if s.Columns <= 0 {
		return Measurement{}, fmt.Errorf("%w: no columns", ErrMeasurementUnavailable)
	}

	gap := s.Gap
	if gap <= 0 {
		gap = DefaultGap
	}
	cols := float64(s.Columns)
	columnWidth := (s.Container.Width - gap*(cols-1)) / cols
	rowHeight := DefaultRowHeight

	if sm := s.Sample; sm != nil {
		if sm.RowSpan > 0 && sm.Rect.Height > 0 {
			rowHeight = (sm.Rect.Height + gap*float64(sm.RowSpan-1)) / float64(sm.RowSpan)
		}
		if sm.ColumnSpan > 0 && sm.Rect.Width > 0 {
			columnWidth = (sm.Rect.Width + gap*float64(sm.ColumnSpan-1)) / float64(sm.ColumnSpan)
		}
	}

	if columnWidth <= 0 {
		columnWidth = s.Container.Width / cols
	}
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}

	return Measurement{
		Container:   s.Container,
		ColumnWidth: columnWidth,
		RowHeight:   rowHeight,
		Gap:         gap,
		Columns:     s.Columns,
	}, nil
}
