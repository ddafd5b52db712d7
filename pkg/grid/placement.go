package grid

// MaxScanRows bounds the placement search so it always terminates.
const MaxScanRows = 200

// FindNextAvailablePosition returns the first free cell for a widget of the
// given size, scanning rows top-down from startY and columns left to right.
//
// It never fails. When MaxScanRows rows have been scanned without a free
// cell (or the size can't fit the columns at all) it returns an overflow
// position {0, 3*len(all)} that is not checked for collisions.
func FindNextAvailablePosition(size Size, all []Widget, columns, startY int) Position {
	candidate := Widget{Size: size}
	startY = min(max(0, startY), MaxRow)
	for y := startY; y < startY+MaxScanRows; y++ {
		for x := 0; x <= columns-size.Width; x++ {
			pos := Position{X: x, Y: y}
			if IsValidPosition(pos, size, columns) && !HasCollision(candidate, pos, all, "") {
				return pos
			}
		}
	}
	return Position{X: 0, Y: 3 * len(all)}
}
