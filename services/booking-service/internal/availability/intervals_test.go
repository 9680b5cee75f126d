package availability

import (
	"testing"
	"time"
)

func at(day time.Time, hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func TestMergeBusy_CoalescesOverlappingAndAdjacent(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	busy := []Interval{
		{Start: at(day, 12, 0), End: at(day, 13, 0)},
		{Start: at(day, 9, 0), End: at(day, 10, 0)},
		{Start: at(day, 9, 30), End: at(day, 11, 0)},
		{Start: at(day, 11, 0), End: at(day, 11, 30)}, // adjacent to previous
		{Start: at(day, 15, 0), End: at(day, 15, 0)},  // zero length, dropped
	}

	merged := mergeBusy(busy)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged intervals, got %d: %v", len(merged), merged)
	}
	if !merged[0].Start.Equal(at(day, 9, 0)) || !merged[0].End.Equal(at(day, 11, 30)) {
		t.Fatalf("unexpected first merged interval: %v", merged[0])
	}
	if !merged[1].Start.Equal(at(day, 12, 0)) || !merged[1].End.Equal(at(day, 13, 0)) {
		t.Fatalf("unexpected second merged interval: %v", merged[1])
	}
}

func TestSubtract_ClipsBusyToWindow(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	window := Interval{Start: at(day, 10, 0), End: at(day, 18, 0)}

	// Busy spans that start before and end after the window must be clipped
	// before subtraction.
	busy := mergeBusy([]Interval{
		{Start: at(day, 8, 0), End: at(day, 11, 0)},
		{Start: at(day, 17, 0), End: at(day, 20, 0)},
	})

	free := subtract(window, busy)
	if len(free) != 1 {
		t.Fatalf("expected 1 free interval, got %d: %v", len(free), free)
	}
	if !free[0].Start.Equal(at(day, 11, 0)) || !free[0].End.Equal(at(day, 17, 0)) {
		t.Fatalf("unexpected free interval: %v", free[0])
	}
}

func TestSubtract_BusyCoveringWindow(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	window := Interval{Start: at(day, 10, 0), End: at(day, 12, 0)}
	busy := []Interval{{Start: at(day, 9, 0), End: at(day, 13, 0)}}

	if free := subtract(window, mergeBusy(busy)); len(free) != 0 {
		t.Fatalf("expected no free intervals, got %v", free)
	}
}

func TestOverlaps_HalfOpenTieBreak(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	a := Interval{Start: at(day, 10, 0), End: at(day, 12, 0)}
	b := Interval{Start: at(day, 12, 0), End: at(day, 14, 0)}

	// A booking ending exactly when another begins is legal.
	if a.Overlaps(b) || b.Overlaps(a) {
		t.Fatal("back-to-back intervals must not overlap")
	}
	c := Interval{Start: at(day, 11, 59), End: at(day, 12, 1)}
	if !a.Overlaps(c) || !b.Overlaps(c) {
		t.Fatal("expected overlap with interval crossing the boundary")
	}
}
