package grid

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Layout is the authoritative widget set of one dashboard. Every committed
// change keeps all widgets inside the columns, non-overlapping and with a
// positive size; rejected changes leave it untouched.
//
// A Layout is not safe for concurrent use.
type Layout struct {
	columns int
	widgets []Widget
	newID   func() string
}

// NewLayout builds a layout from an initial widget set. It fails if the set
// breaks any layout invariant. A non-positive columns means DefaultColumns.
func NewLayout(columns int, widgets ...Widget) (*Layout, error) {
	if columns <= 0 {
		columns = DefaultColumns
	}
	l := &Layout{
		columns: columns,
		widgets: make([]Widget, 0, len(widgets)),
		newID:   uuid.NewString,
	}
	for _, w := range widgets {
		if err := l.admit(w); err != nil {
			return nil, fmt.Errorf("widget %q: %w", w.ID, err)
		}
		l.widgets = append(l.widgets, w)
	}
	return l, nil
}

func (l *Layout) admit(w Widget) error {
	if w.ID == "" {
		return ErrMissingID
	}
	if l.index(w.ID) >= 0 {
		return ErrDuplicateID
	}
	if !w.Type.Valid() {
		return ErrUnknownType
	}
	if err := checkConfig(w.Type, w.Config); err != nil {
		return err
	}
	if !w.Size.Valid() {
		return ErrInvalidSize
	}
	if !IsValidPosition(w.Position, w.Size, l.columns) {
		return ErrOutOfBounds
	}
	if HasCollision(w, w.Position, l.widgets, "") {
		return ErrCollisionDetected
	}
	return nil
}

// Columns returns the fixed column count.
func (l *Layout) Columns() int { return l.columns }

// Len returns the number of widgets.
func (l *Layout) Len() int { return len(l.widgets) }

// Get returns the widget with the given id.
func (l *Layout) Get(id string) (Widget, bool) {
	i := l.index(id)
	if i < 0 {
		return Widget{}, false
	}
	return l.widgets[i], true
}

// Widgets returns a copy of the widgets ordered top to bottom, then left to
// right, for display.
func (l *Layout) Widgets() []Widget {
	out := slices.Clone(l.widgets)
	slices.SortStableFunc(out, func(a, b Widget) int {
		if c := cmp.Compare(a.Position.Y, b.Position.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Position.X, b.Position.X)
	})
	return out
}

// Add places a new widget in the first free slot and appends it.
func (l *Layout) Add(t Type, title string, size Size, cfg Config) (Widget, error) {
	if !t.Valid() {
		return Widget{}, ErrUnknownType
	}
	if !size.Valid() {
		return Widget{}, ErrInvalidSize
	}
	if size.Width > l.columns {
		return Widget{}, ErrOutOfBounds
	}
	if err := checkConfig(t, cfg); err != nil {
		return Widget{}, err
	}

	w := Widget{
		ID:       l.newID(),
		Type:     t,
		Title:    title,
		Position: FindNextAvailablePosition(size, l.widgets, l.columns, 0),
		Size:     size,
		Config:   cfg,
	}
	l.widgets = append(l.widgets, w)
	return w, nil
}

// Remove deletes the widget with the given id. Removing an unknown id is a
// no-op and reports false.
func (l *Layout) Remove(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.widgets = slices.Delete(l.widgets, i, i+1)
	return true
}

// Drop moves a widget to the cell under the pointer. The measurer is read
// once, synchronously. On any error the layout is unchanged.
func (l *Layout) Drop(id string, pointer Point, m Measurer) (Widget, error) {
	i := l.index(id)
	if i < 0 {
		return Widget{}, ErrWidgetNotFound
	}
	cell, err := Resolve(pointer, l.widgets[i].Size, m)
	if err != nil {
		return Widget{}, err
	}
	return l.place(i, cell)
}

// MoveTo moves a widget to an explicit cell, with the same clamping and
// checks as Drop.
func (l *Layout) MoveTo(id string, pos Position) (Widget, error) {
	i := l.index(id)
	if i < 0 {
		return Widget{}, ErrWidgetNotFound
	}
	return l.place(i, pos)
}

// Suggest returns where the widget could go near pos without moving it.
func (l *Layout) Suggest(id string, pos Position) (Position, bool, error) {
	i := l.index(id)
	if i < 0 {
		return Position{}, false, ErrWidgetNotFound
	}
	p, ok := Suggest(l.widgets[i], pos, l.widgets, l.columns)
	return p, ok, nil
}

func (l *Layout) place(i int, pos Position) (Widget, error) {
	w := l.widgets[i]
	pos = ClampPosition(pos, w.Size, l.columns)
	if !IsValidPosition(pos, w.Size, l.columns) {
		return Widget{}, ErrOutOfBounds
	}
	if HasCollision(w, pos, l.widgets, "") {
		return Widget{}, ErrCollisionDetected
	}
	l.widgets[i].Position = pos
	return l.widgets[i], nil
}

func (l *Layout) index(id string) int {
	return slices.IndexFunc(l.widgets, func(w Widget) bool { return w.ID == id })
}
