package grid

import (
	"errors"
	"fmt"
	"math"
)

// Point is a pointer position in pixels, in the same coordinate space as
// the container rectangle.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an on-screen bounding box in pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurement is the live geometry of the rendered grid.
type Measurement struct {
	Container   Rect
	ColumnWidth float64
	RowHeight   float64
	Gap         float64
	Columns     int
}

// Measurer supplies the grid geometry at the moment of a drop. It returns
// an error matching ErrMeasurementUnavailable when the geometry can't be
// produced.
type Measurer interface {
	Measure() (Measurement, error)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func() (Measurement, error)

func (f MeasurerFunc) Measure() (Measurement, error) { return f() }

// Resolve maps a pointer position to the cell a widget of the given size
// would be dropped on. The result is clamped to the grid but not checked
// for collisions.
//
// The cell index rounds at half a cell (including half a gap), so a drop
// lands on whichever cell boundary is nearer instead of always truncating.
func Resolve(pointer Point, size Size, m Measurer) (Position, error) {
	if m == nil {
		return Position{}, ErrMeasurementUnavailable
	}
	geo, err := m.Measure()
	if err != nil {
		if !errors.Is(err, ErrMeasurementUnavailable) {
			err = fmt.Errorf("%w: %v", ErrMeasurementUnavailable, err)
		}
		return Position{}, err
	}
	if geo.Columns <= 0 || geo.ColumnWidth+geo.Gap <= 0 || geo.RowHeight+geo.Gap <= 0 {
		return Position{}, ErrMeasurementUnavailable
	}

	relX := pointer.X - geo.Container.Left
	relY := pointer.Y - geo.Container.Top
	if relX < 0 || relY < 0 {
		return Position{}, ErrOutOfBounds
	}

	col := math.Floor((relX + geo.Gap/2) / (geo.ColumnWidth + geo.Gap))
	row := math.Floor((relY + geo.Gap/2) / (geo.RowHeight + geo.Gap))
	if math.IsNaN(col) || math.IsNaN(row) {
		return Position{}, ErrOutOfBounds
	}
	// Bound the indices before converting; out-of-range float to int is
	// implementation defined.
	cell := Position{
		X: int(min(col, float64(geo.Columns))),
		Y: int(min(row, float64(MaxRow))),
	}
	return ClampPosition(cell, size, geo.Columns), nil
}
