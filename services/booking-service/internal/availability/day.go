package availability

import (
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// DayInputs is everything needed to compute one date's free intervals.
// Dates never cross midnight; each date is computed from same-day inputs
// only. All times are UTC.
type DayInputs struct {
	Date     time.Time // midnight UTC
	Windows  []model.WeeklyWindow
	Blocked  []model.BlockedInterval
	Sessions []model.CommittedSession
	Settings model.TimeSettings
}

// ComputeDaySlots subtracts the date's busy set (blocked intervals plus
// committed sessions expanded to their travel-start) from the weekly windows
// matching the date's weekday, drops results shorter than minDuration, and
// returns the survivors in chronological order.
//
// The session count, not the slot count, is the binding constraint for
// MaxSessionsPerDay: once a date carries that many committed sessions it is
// saturated and yields no slots regardless of remaining free time.
func ComputeDaySlots(in DayInputs, minDuration time.Duration) []Interval {
	date := in.Date.Truncate(24 * time.Hour)
	weekday := int(date.Weekday())

	if in.Settings.MaxSessionsPerDay > 0 && countCommitted(in.Sessions) >= in.Settings.MaxSessionsPerDay {
		return nil
	}

	busy := mergeBusy(busySet(date, in.Blocked, in.Sessions))

	var free []Interval
	for _, w := range sortedWindows(in.Windows, weekday) {
		window := Interval{
			Start: date.Add(time.Duration(w.StartMinute) * time.Minute),
			End:   date.Add(time.Duration(w.EndMinute) * time.Minute),
		}
		if !window.End.After(window.Start) {
			continue
		}
		for _, f := range subtract(window, busy) {
			if f.Duration() < minDuration {
				continue
			}
			free = append(free, f)
		}
	}
	return free
}

// busySet expands the date's blocks and sessions into raw busy intervals.
// A session occupies [TravelStart, End): the lead buffer before its nominal
// start counts against availability.
func busySet(date time.Time, blocked []model.BlockedInterval, sessions []model.CommittedSession) []Interval {
	var busy []Interval
	for _, b := range blocked {
		if !sameDate(b.Date, date) {
			continue
		}
		busy = append(busy, Interval{
			Start: date.Add(time.Duration(b.StartMinute) * time.Minute),
			End:   date.Add(time.Duration(b.EndMinute) * time.Minute),
		})
	}
	for _, s := range sessions {
		if s.Status == model.SessionStatusCancelled {
			continue
		}
		if !sameDate(s.Date, date) {
			continue
		}
		start := s.TravelStart
		if start.IsZero() || start.After(s.Start) {
			start = s.Start
		}
		busy = append(busy, Interval{Start: start, End: s.End})
	}
	return busy
}

func countCommitted(sessions []model.CommittedSession) int {
	n := 0
	for _, s := range sessions {
		if s.Status != model.SessionStatusCancelled {
			n++
		}
	}
	return n
}

func sortedWindows(windows []model.WeeklyWindow, weekday int) []model.WeeklyWindow {
	var out []model.WeeklyWindow
	for _, w := range windows {
		if w.Weekday == weekday {
			out = append(out, w)
		}
	}
	// Upstream guarantees non-overlap within a day, but not order.
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j].StartMinute < out[j-1].StartMinute {
			out[j], out[j-1] = out[j-1], out[j]
			j--
		}
	}
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
