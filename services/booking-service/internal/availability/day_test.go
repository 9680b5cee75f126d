package availability

import (
	"testing"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

var testDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func dayInputs(sessions []model.CommittedSession, blocked []model.BlockedInterval) DayInputs {
	settings := model.DefaultTimeSettings("chef-1")
	settings.MaxSessionsPerDay = 2
	return DayInputs{
		Date: testDay,
		Windows: []model.WeeklyWindow{
			{ChefID: "chef-1", Weekday: int(testDay.Weekday()), StartMinute: 14 * 60, EndMinute: 18 * 60},
		},
		Blocked:  blocked,
		Sessions: sessions,
		Settings: settings,
	}
}

func TestComputeDaySlots_OpenDay(t *testing.T) {
	// Schedule 14:00-18:00, no bookings, no blocks: one slot covering the
	// whole window.
	free := ComputeDaySlots(dayInputs(nil, nil), 0)
	if len(free) != 1 {
		t.Fatalf("expected 1 slot, got %d: %v", len(free), free)
	}
	if !free[0].Start.Equal(at(testDay, 14, 0)) || !free[0].End.Equal(at(testDay, 18, 0)) {
		t.Fatalf("unexpected slot: %v", free[0])
	}
	if free[0].Duration() != 240*time.Minute {
		t.Fatalf("expected 240 minutes, got %v", free[0].Duration())
	}
}

func TestComputeDaySlots_TravelLeadShrinksWindow(t *testing.T) {
	// A session serving 18:00-19:00 with travel starting at 17:00 occupies
	// 17:00-19:00 for availability purposes.
	sessions := []model.CommittedSession{{
		ID:          "s1",
		ChefID:      "chef-1",
		Date:        testDay,
		TravelStart: at(testDay, 17, 0),
		Start:       at(testDay, 18, 0),
		End:         at(testDay, 19, 0),
		Status:      model.SessionStatusCommitted,
	}}

	free := ComputeDaySlots(dayInputs(sessions, nil), 0)
	if len(free) != 1 {
		t.Fatalf("expected 1 slot, got %d: %v", len(free), free)
	}
	if !free[0].Start.Equal(at(testDay, 14, 0)) || !free[0].End.Equal(at(testDay, 17, 0)) {
		t.Fatalf("expected 14:00-17:00, got %v", free[0])
	}
	if free[0].Duration() != 180*time.Minute {
		t.Fatalf("expected 180 minutes, got %v", free[0].Duration())
	}

	// Asking for a minimum 200-minute slot excludes the 180-minute window.
	if free := ComputeDaySlots(dayInputs(sessions, nil), 200*time.Minute); len(free) != 0 {
		t.Fatalf("expected no slots with 200m minimum, got %v", free)
	}
}

func TestComputeDaySlots_SaturatedDay(t *testing.T) {
	// Two committed sessions equal MaxSessionsPerDay: the date yields no
	// slots regardless of remaining free time.
	sessions := []model.CommittedSession{
		{ID: "s1", Date: testDay, TravelStart: at(testDay, 14, 0), Start: at(testDay, 14, 30), End: at(testDay, 15, 0), Status: model.SessionStatusCommitted},
		{ID: "s2", Date: testDay, TravelStart: at(testDay, 16, 0), Start: at(testDay, 16, 30), End: at(testDay, 17, 0), Status: model.SessionStatusCommitted},
	}

	if free := ComputeDaySlots(dayInputs(sessions, nil), 0); len(free) != 0 {
		t.Fatalf("expected saturated day to yield no slots, got %v", free)
	}
}

func TestComputeDaySlots_CancelledSessionsDoNotCount(t *testing.T) {
	cancelled := at(testDay, 12, 0)
	sessions := []model.CommittedSession{
		{ID: "s1", Date: testDay, Start: at(testDay, 15, 0), End: at(testDay, 16, 0), Status: model.SessionStatusCancelled, CancelledAt: &cancelled},
	}

	free := ComputeDaySlots(dayInputs(sessions, nil), 0)
	if len(free) != 1 || free[0].Duration() != 240*time.Minute {
		t.Fatalf("cancelled session must not block the window, got %v", free)
	}
}

func TestComputeDaySlots_BlockedIntervalSplitsWindow(t *testing.T) {
	blocked := []model.BlockedInterval{
		{ID: "b1", ChefID: "chef-1", Date: testDay, StartMinute: 15 * 60, EndMinute: 16 * 60, Reason: "school run"},
	}

	free := ComputeDaySlots(dayInputs(nil, blocked), 0)
	if len(free) != 2 {
		t.Fatalf("expected 2 slots, got %d: %v", len(free), free)
	}
	if !free[0].End.Equal(at(testDay, 15, 0)) || !free[1].Start.Equal(at(testDay, 16, 0)) {
		t.Fatalf("unexpected split: %v", free)
	}
}

func TestComputeDaySlots_CoverageInvariant(t *testing.T) {
	// Free slots plus busy spans (restricted to the schedule window) must
	// reconstruct the window exactly.
	sessions := []model.CommittedSession{{
		ID: "s1", Date: testDay,
		TravelStart: at(testDay, 16, 30),
		Start:       at(testDay, 17, 0),
		End:         at(testDay, 17, 45),
		Status:      model.SessionStatusCommitted,
	}}
	blocked := []model.BlockedInterval{
		{ID: "b1", Date: testDay, StartMinute: 14*60 + 30, EndMinute: 15 * 60},
	}

	in := dayInputs(sessions, blocked)
	free := ComputeDaySlots(in, 0)

	window := Interval{Start: at(testDay, 14, 0), End: at(testDay, 18, 0)}
	busy := mergeBusy(busySet(testDay, blocked, sessions))

	var covered time.Duration
	for _, f := range free {
		covered += f.Duration()
		for _, b := range busy {
			if f.Overlaps(b) {
				t.Fatalf("free slot %v overlaps busy %v", f, b)
			}
		}
	}
	for _, b := range busy {
		if clipped, ok := b.clip(window.Start, window.End); ok {
			covered += clipped.Duration()
		}
	}
	if covered != window.Duration() {
		t.Fatalf("free+busy covers %v, window is %v", covered, window.Duration())
	}
}

func TestComputeDaySlots_Deterministic(t *testing.T) {
	sessions := []model.CommittedSession{{
		ID: "s1", Date: testDay,
		TravelStart: at(testDay, 15, 0),
		Start:       at(testDay, 15, 30),
		End:         at(testDay, 16, 30),
		Status:      model.SessionStatusCommitted,
	}}

	first := ComputeDaySlots(dayInputs(sessions, nil), 0)
	for i := 0; i < 5; i++ {
		again := ComputeDaySlots(dayInputs(sessions, nil), 0)
		if len(again) != len(first) {
			t.Fatalf("result count changed between runs: %d vs %d", len(first), len(again))
		}
		for j := range again {
			if !again[j].Start.Equal(first[j].Start) || !again[j].End.Equal(first[j].End) {
				t.Fatalf("result %d changed between runs", j)
			}
		}
	}
}
