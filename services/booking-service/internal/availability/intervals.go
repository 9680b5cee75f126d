// Package availability computes the free time windows of a chef's day:
// recurring weekly windows minus one-off blocks and committed sessions
// (including their travel lead buffers).
package availability

import (
	"sort"
	"time"
)

// Interval is a half-open time span [Start, End). A session ending exactly
// when another begins does not overlap it.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether [start, end) lies entirely inside the interval.
func (iv Interval) Contains(start, end time.Time) bool {
	return !start.Before(iv.Start) && !end.After(iv.End)
}

// clip bounds the interval to [boundStart, boundEnd). The second return is
// false when nothing remains.
func (iv Interval) clip(boundStart, boundEnd time.Time) (Interval, bool) {
	s, e := iv.Start, iv.End
	if s.Before(boundStart) {
		s = boundStart
	}
	if e.After(boundEnd) {
		e = boundEnd
	}
	if !e.After(s) {
		return Interval{}, false
	}
	return Interval{Start: s, End: e}, true
}

// mergeBusy sorts busy intervals and coalesces overlapping or adjacent ones
// into a minimal disjoint set. Zero-length inputs are dropped.
func mergeBusy(busy []Interval) []Interval {
	var in []Interval
	for _, b := range busy {
		if b.End.After(b.Start) {
			in = append(in, b)
		}
	}
	if len(in) == 0 {
		return nil
	}

	sort.Slice(in, func(i, j int) bool {
		if in[i].Start.Equal(in[j].Start) {
			return in[i].End.Before(in[j].End)
		}
		return in[i].Start.Before(in[j].Start)
	})

	merged := in[:1]
	for _, cur := range in[1:] {
		last := &merged[len(merged)-1]
		if cur.Start.After(last.End) {
			merged = append(merged, cur)
			continue
		}
		if cur.End.After(last.End) {
			last.End = cur.End
		}
	}
	return merged
}

// subtract removes a disjoint, sorted busy set from the window, returning
// the remaining free sub-intervals in chronological order. Busy intervals
// are clipped to the window bounds first.
func subtract(window Interval, busy []Interval) []Interval {
	var free []Interval
	cursor := window.Start
	for _, b := range busy {
		clipped, ok := b.clip(window.Start, window.End)
		if !ok {
			continue
		}
		if clipped.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: clipped.Start})
		}
		if clipped.End.After(cursor) {
			cursor = clipped.End
		}
	}
	if window.End.After(cursor) {
		free = append(free, Interval{Start: cursor, End: window.End})
	}
	return free
}
