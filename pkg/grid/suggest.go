package grid

// Suggest finds a valid spot for w at or next to pos. The clamped pos wins
// when it is free; otherwise the four neighbours are tried in the order
// left, right, up, down. It reports false when none of them is free.
func Suggest(w Widget, pos Position, all []Widget, columns int) (Position, bool) {
	clamped := ClampPosition(pos, w.Size, columns)
	if !IsValidPosition(clamped, w.Size, columns) {
		return Position{}, false
	}
	if !HasCollision(w, clamped, all, "") {
		return clamped, true
	}

	nearby := []Position{
		{X: clamped.X - 1, Y: clamped.Y},
		{X: clamped.X + 1, Y: clamped.Y},
		{X: clamped.X, Y: clamped.Y - 1},
		{X: clamped.X, Y: clamped.Y + 1},
	}
	for _, p := range nearby {
		p = ClampPosition(p, w.Size, columns)
		if IsValidPosition(p, w.Size, columns) && !HasCollision(w, p, all, "") {
			return p, true
		}
	}
	return Position{}, false
}

// Repair turns an arbitrary widget set into one that satisfies the layout
// invariants. Widgets are taken in order; each keeps its clamped position
// when that is free and is otherwise moved to the next free slot at or
// below it. Widgets that can never fit (bad size, wider than the grid,
// wrong config, missing or repeated id) are dropped. It returns the repaired
// set, the ids whose position changed and the input indices that were
// dropped. Indices rather than ids identify drops, since a dropped entry may
// share its id with a kept one or have none at all.
func Repair(columns int, widgets []Widget) (kept []Widget, moved []string, dropped []int) {
	if columns <= 0 {
		columns = DefaultColumns
	}
	seen := make(map[string]bool, len(widgets))
	for i, w := range widgets {
		if w.ID == "" || seen[w.ID] || !w.Type.Valid() || checkConfig(w.Type, w.Config) != nil ||
			!w.Size.Valid() || w.Size.Width > columns {
			dropped = append(dropped, i)
			continue
		}

		pos := ClampPosition(w.Position, w.Size, columns)
		if HasCollision(w, pos, kept, "") {
			pos = FindNextAvailablePosition(w.Size, kept, columns, pos.Y)
		}
		if HasCollision(w, pos, kept, "") {
			pos = Position{X: 0, Y: bottom(kept)}
		}
		if !IsValidPosition(pos, w.Size, columns) {
			dropped = append(dropped, i)
			continue
		}
		seen[w.ID] = true
		if pos != w.Position {
			moved = append(moved, w.ID)
			w.Position = pos
		}
		kept = append(kept, w)
	}
	return kept, moved, dropped
}

// bottom is the first row below every widget.
func bottom(widgets []Widget) int {
	y := 0
	for _, w := range widgets {
		y = max(y, w.Position.Y+w.Size.Height)
	}
	return y
}
