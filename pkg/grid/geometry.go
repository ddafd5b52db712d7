package grid

// Default grid parameters used by the dashboard.
const (
	DefaultColumns = 8
	DefaultGap     = 16.0
)

// Row limits. No widget may extend below MaxRow, and no widget may be taller
// than MaxHeight, so row arithmetic never leaves the int range.
const (
	MaxRow    = 1 << 30
	MaxHeight = MaxScanRows
)

// Position is a cell coordinate. X is the column, Y the row, both zero based.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a span of cells.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both spans are positive and the height is at most
// MaxHeight.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 && s.Height <= MaxHeight
}

// IsValidPosition reports whether a widget of the given size fits at pos:
// inside the columns, at or below the top edge and ending by MaxRow.
func IsValidPosition(pos Position, size Size, columns int) bool {
	return size.Valid() &&
		pos.X >= 0 &&
		pos.Y >= 0 &&
		pos.X <= columns-size.Width &&
		pos.Y <= MaxRow-size.Height
}

// ClampPosition pulls pos back inside the grid boundaries for a widget of
// the given size. It does not resolve collisions.
func ClampPosition(pos Position, size Size, columns int) Position {
	maxX := max(0, columns-size.Width)
	maxY := MaxRow - min(max(size.Height, 0), MaxRow)
	return Position{
		X: max(0, min(maxX, pos.X)),
		Y: max(0, min(maxY, pos.Y)),
	}
}

// overlaps treats both rectangles as half-open, so shared edges don't count.
func overlaps(aPos Position, aSize Size, bPos Position, bSize Size) bool {
	return !(aPos.X >= bPos.X+bSize.Width ||
		aPos.X+aSize.Width <= bPos.X ||
		aPos.Y >= bPos.Y+bSize.Height ||
		aPos.Y+aSize.Height <= bPos.Y)
}
