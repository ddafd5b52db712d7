// Package grid is the dashboard widget layout engine.
//
// It keeps a set of rectangular widgets on a grid with a fixed number of
// columns and an unbounded number of rows, such that no two widgets overlap
// and every widget stays inside the columns. It provides:
//
//   - geometry checks and clamping (IsValidPosition, ClampPosition)
//   - an overlap predicate (HasCollision)
//   - a row-major first-fit search for free slots (FindNextAvailablePosition)
//   - a pixel-to-cell resolver for drag-and-drop (Resolve, Measurer, Surface)
//   - a Layout that applies Add, Remove and Drop events to a widget set
//
// Everything except Layout is a pure function. Layout is single-owner and
// not safe for concurrent use; callers serialize events per layout.
package grid
