package grid

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestSuggest_FreeSpotWins(t *testing.T) {
	w := metric("M", 0, 0, 2, 2)
	got, ok := Suggest(w, Position{9, 3}, []Widget{w}, 8)
	if !ok || got != (Position{6, 3}) {
		t.Fatalf("got %v %v, want (6,3) true", got, ok)
	}
}

func TestSuggest_TriesNeighboursInOrder(t *testing.T) {
	w := metric("M", 0, 6, 2, 2)
	blocker := metric("X", 3, 0, 2, 2)
	all := []Widget{w, blocker}

	// (3,0) is taken; left (2,0) overlaps X too, right (4,0) overlaps, up
	// clamps back onto X, down (3,1) overlaps. Nothing fits.
	if _, ok := Suggest(w, Position{3, 0}, all, 8); ok {
		t.Fatal("expected no suggestion")
	}

	// (4,1) is taken; left (3,1) also, right (5,1) is free.
	got, ok := Suggest(w, Position{4, 1}, []Widget{w, metric("X", 3, 0, 2, 2), metric("Y", 5, 0, 1, 1)}, 8)
	if !ok || got != (Position{5, 1}) {
		t.Fatalf("got %v %v, want (5,1) true", got, ok)
	}
}

func TestSuggest_LeftBeforeRight(t *testing.T) {
	w := metric("M", 0, 6, 1, 1)
	all := []Widget{w, metric("X", 3, 0, 1, 1)}
	got, ok := Suggest(w, Position{3, 0}, all, 8)
	if !ok || got != (Position{2, 0}) {
		t.Fatalf("got %v %v, want (2,0) true", got, ok)
	}
}

func TestLayoutSuggest(t *testing.T) {
	l := newTestLayout(t, metric("A", 0, 0, 2, 2), metric("B", 2, 0, 2, 2))
	before := l.Widgets()

	got, ok, err := l.Suggest("A", Position{2, 0})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("unexpected suggestion %v", got)
	}
	if _, _, err := l.Suggest("nope", Position{}); !errors.Is(err, ErrWidgetNotFound) {
		t.Fatalf("err = %v", err)
	}
	if !reflect.DeepEqual(before, l.Widgets()) {
		t.Fatal("Suggest changed the layout")
	}
}

func TestRepair_ResolvesOverlapsAndDropsBroken(t *testing.T) {
	in := []Widget{
		metric("A", 0, 0, 4, 3),
		metric("B", 2, 1, 4, 3),
		metric("C", 7, 5, 2, 2),
		metric("A", 0, 5, 1, 1),
		metric("D", 0, 0, 0, 1),
		{ID: "E", Type: TypeChart, Size: Size{1, 1}, Config: MetricConfig{}},
		metric("W", 0, 0, 12, 1),
	}
	kept, moved, dropped := Repair(8, in)

	if want := []int{3, 4, 5, 6}; !reflect.DeepEqual(dropped, want) {
		t.Errorf("dropped = %v, want %v", dropped, want)
	}
	if want := []string{"B", "C"}; !reflect.DeepEqual(moved, want) {
		t.Errorf("moved = %v, want %v", moved, want)
	}

	l, err := NewLayout(8, kept...)
	if err != nil {
		t.Fatalf("repaired set is not a valid layout: %v", err)
	}
	checkInvariants(t, l)

	byID := map[string]Position{}
	for _, w := range kept {
		byID[w.ID] = w.Position
	}
	if byID["A"] != (Position{0, 0}) {
		t.Errorf("A moved to %v", byID["A"])
	}
	if byID["C"] != (Position{6, 5}) {
		t.Errorf("C = %v, want clamped (6,5)", byID["C"])
	}
}

func TestRepair_ValidSetUntouched(t *testing.T) {
	in := []Widget{metric("A", 0, 0, 2, 2), metric("B", 2, 0, 2, 2)}
	kept, moved, dropped := Repair(8, in)
	if len(moved) != 0 || len(dropped) != 0 {
		t.Fatalf("moved %v dropped %v", moved, dropped)
	}
	if !reflect.DeepEqual(kept, in) {
		t.Fatalf("kept = %v", kept)
	}
}

func TestRepair_DropsReportEntriesNotIDs(t *testing.T) {
	in := []Widget{
		metric("", 0, 0, 1, 1),
		metric("A", 0, 0, 2, 2),
		metric("A", 4, 0, 2, 2),
	}
	kept, _, dropped := Repair(8, in)
	if want := []int{0, 2}; !reflect.DeepEqual(dropped, want) {
		t.Fatalf("dropped = %v, want %v", dropped, want)
	}
	if len(kept) != 1 || kept[0].Position != (Position{0, 0}) {
		t.Fatalf("kept = %v, want the first A", kept)
	}
}

func TestRepair_PullsFarRowsBackInRange(t *testing.T) {
	in := []Widget{
		metric("A", 0, math.MaxInt-1, 2, 2),
		metric("B", 0, math.MaxInt, 2, 2),
		metric("T", 4, 0, 2, math.MaxInt),
	}
	kept, moved, dropped := Repair(8, in)
	if want := []int{2}; !reflect.DeepEqual(dropped, want) {
		t.Fatalf("dropped = %v, want %v", dropped, want)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(moved, want) {
		t.Fatalf("moved = %v, want %v", moved, want)
	}
	l, err := NewLayout(8, kept...)
	if err != nil {
		t.Fatalf("repaired set is not a valid layout: %v", err)
	}
	checkInvariants(t, l)
}
