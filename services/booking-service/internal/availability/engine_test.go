package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// fakeSources backs the engine with in-memory data for tests.
type fakeSources struct {
	chef     model.Chef
	windows  []model.WeeklyWindow
	blocked  []model.BlockedInterval
	sessions []model.CommittedSession
	settings model.TimeSettings
	dishes   map[string]model.DishCookProfile
	menus    map[string][]string
	travel   time.Duration
}

func (f *fakeSources) ChefProfile(_ context.Context, chefID string) (model.Chef, error) {
	if chefID != f.chef.ID {
		return model.Chef{}, fmt.Errorf("%w: %s", model.ErrChefNotFound, chefID)
	}
	return f.chef, nil
}

func (f *fakeSources) WeeklyWindows(_ context.Context, _ string) ([]model.WeeklyWindow, error) {
	return f.windows, nil
}

func (f *fakeSources) BlockedIntervals(_ context.Context, _ string, _, _ time.Time) ([]model.BlockedInterval, error) {
	return f.blocked, nil
}

func (f *fakeSources) CommittedSessions(_ context.Context, _ string, _, _ time.Time) ([]model.CommittedSession, error) {
	return f.sessions, nil
}

func (f *fakeSources) TimeSettings(_ context.Context, _ string) (model.TimeSettings, error) {
	return f.settings, nil
}

func (f *fakeSources) Dishes(_ context.Context, _ string, ids []string) ([]model.DishCookProfile, error) {
	var out []model.DishCookProfile
	for _, id := range ids {
		d, ok := f.dishes[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown dish %s", model.ErrInvalidSelection, id)
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeSources) MenuDishes(ctx context.Context, chefID, menuID string) ([]model.DishCookProfile, error) {
	ids, ok := f.menus[menuID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown menu %s", model.ErrInvalidSelection, menuID)
	}
	return f.Dishes(ctx, chefID, ids)
}

func (f *fakeSources) TravelDuration(_ context.Context, _, _ model.GeoPoint) (time.Duration, error) {
	return f.travel, nil
}

func newFakeSources() *fakeSources {
	settings := model.DefaultTimeSettings("chef-1")
	settings.PrepMinutes = 30
	settings.CleanupMinutes = 30
	settings.CookingEfficiency = 1.0
	settings.MaxSessionsPerDay = 2
	settings.MaxDaysAhead = 60
	return &fakeSources{
		chef: model.Chef{ID: "chef-1", Name: "Ayesha", Status: model.ChefStatusApproved},
		windows: []model.WeeklyWindow{
			{ChefID: "chef-1", Weekday: int(testDay.Weekday()), StartMinute: 14 * 60, EndMinute: 18 * 60},
		},
		settings: settings,
		dishes: map[string]model.DishCookProfile{
			"d1": {ID: "d1", ChefID: "chef-1", Name: "Biryani", CookTimeMinutes: 45, CookGroup: 6},
		},
		menus: map[string][]string{"m1": {"d1"}},
	}
}

func newEngine(f *fakeSources) *Engine {
	return NewEngine(f, f, f, f, f, f, f)
}

func TestEngine_FindSlots_OpenDay(t *testing.T) {
	eng := newEngine(newFakeSources())

	slots, err := eng.FindSlots(context.Background(), "chef-1", testDay, 0)
	if err != nil {
		t.Fatalf("FindSlots failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	s := slots[0]
	if s.ChefName != "Ayesha" || s.DurationMinutes != 240 {
		t.Fatalf("unexpected slot: %+v", s)
	}
	if !s.Start.Equal(at(testDay, 14, 0)) || !s.End.Equal(at(testDay, 18, 0)) {
		t.Fatalf("expected 14:00-18:00, got %s-%s", s.Start.Format("15:04"), s.End.Format("15:04"))
	}
}

func TestEngine_FindSlots_NoteOnTravelShrunkWindow(t *testing.T) {
	f := newFakeSources()
	f.sessions = []model.CommittedSession{{
		ID: "s1", ChefID: "chef-1", Date: testDay,
		TravelStart: at(testDay, 17, 0),
		Start:       at(testDay, 18, 0),
		End:         at(testDay, 19, 0),
		Status:      model.SessionStatusCommitted,
	}}
	eng := newEngine(f)

	slots, err := eng.FindSlots(context.Background(), "chef-1", testDay, 0)
	if err != nil {
		t.Fatalf("FindSlots failed: %v", err)
	}
	if len(slots) != 1 || slots[0].DurationMinutes != 180 {
		t.Fatalf("expected one 180m slot, got %+v", slots)
	}
	if slots[0].Note == "" {
		t.Fatal("expected a note explaining the travel buffer")
	}
}

func TestEngine_FindSlots_UnknownChef(t *testing.T) {
	eng := newEngine(newFakeSources())

	_, err := eng.FindSlots(context.Background(), "nope", testDay, 0)
	if !errors.Is(err, model.ErrChefNotFound) {
		t.Fatalf("expected ErrChefNotFound, got %v", err)
	}
}

func TestEngine_FindSlotsRange_Validation(t *testing.T) {
	eng := newEngine(newFakeSources())
	ctx := context.Background()

	if _, err := eng.FindSlotsRange(ctx, "chef-1", testDay, testDay.AddDate(0, 0, -1), 0); !errors.Is(err, model.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange for reversed range, got %v", err)
	}
	if _, err := eng.FindSlotsRange(ctx, "chef-1", testDay, testDay.AddDate(0, 0, 90), 0); !errors.Is(err, model.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange beyond max days ahead, got %v", err)
	}
}

func TestEngine_FindSlotsRange_MultipleDays(t *testing.T) {
	f := newFakeSources()
	nextDay := testDay.AddDate(0, 0, 1)
	f.windows = append(f.windows, model.WeeklyWindow{
		ChefID: "chef-1", Weekday: int(nextDay.Weekday()), StartMinute: 10 * 60, EndMinute: 12 * 60,
	})
	eng := newEngine(f)

	slots, err := eng.FindSlotsRange(context.Background(), "chef-1", testDay, nextDay, 0)
	if err != nil {
		t.Fatalf("FindSlotsRange failed: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots across 2 days, got %d", len(slots))
	}
	if !sameDate(slots[0].Date, testDay) || !sameDate(slots[1].Date, nextDay) {
		t.Fatalf("slots out of order: %+v", slots)
	}
}

func TestEngine_FindSlots_EmptyIsNotAnError(t *testing.T) {
	f := newFakeSources()
	f.windows = nil // chef has no recurring schedule
	eng := newEngine(f)

	slots, err := eng.FindSlots(context.Background(), "chef-1", testDay, 0)
	if err != nil {
		t.Fatalf("no availability must not be an error, got %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", slots)
	}
}

func TestEngine_IsAvailable(t *testing.T) {
	f := newFakeSources()
	f.sessions = []model.CommittedSession{{
		ID: "s1", ChefID: "chef-1", Date: testDay,
		TravelStart: at(testDay, 16, 0),
		Start:       at(testDay, 16, 30),
		End:         at(testDay, 17, 30),
		Status:      model.SessionStatusCommitted,
	}}
	eng := newEngine(f)
	ctx := context.Background()

	ok, err := eng.IsAvailable(ctx, "chef-1", testDay, at(testDay, 14, 0), at(testDay, 16, 0))
	if err != nil || !ok {
		t.Fatalf("expected 14:00-16:00 available, got ok=%v err=%v", ok, err)
	}
	ok, err = eng.IsAvailable(ctx, "chef-1", testDay, at(testDay, 15, 30), at(testDay, 16, 30))
	if err != nil || ok {
		t.Fatalf("expected 15:30-16:30 unavailable, got ok=%v err=%v", ok, err)
	}
	// Ending exactly at the busy boundary is legal (half-open intervals).
	ok, err = eng.IsAvailable(ctx, "chef-1", testDay, at(testDay, 15, 0), at(testDay, 16, 0))
	if err != nil || !ok {
		t.Fatalf("expected boundary-aligned window available, got ok=%v err=%v", ok, err)
	}
}

func TestEngine_FindSlotsWithCookingTime(t *testing.T) {
	f := newFakeSources()
	f.travel = 25 * time.Minute
	eng := newEngine(f)

	venue := model.GeoPoint{Lat: 23.8, Lng: 90.4}
	slots, err := eng.FindSlotsWithCookingTime(context.Background(), "chef-1", testDay, Selection{
		DishIDs: []string{"d1"},
		Venue:   &venue,
	}, 4, 0)
	if err != nil {
		t.Fatalf("FindSlotsWithCookingTime failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	// 240m window minus 45m cook and 60m prep/cleanup leaves 135m usable.
	if slots[0].DurationMinutes != 135 {
		t.Fatalf("expected 135 usable minutes, got %d", slots[0].DurationMinutes)
	}
	if slots[0].Note == "" {
		t.Fatal("expected a note describing cooking and lead time")
	}
}

func TestEngine_FindSlotsWithCookingTime_MenuSelection(t *testing.T) {
	eng := newEngine(newFakeSources())

	slots, err := eng.FindSlotsWithCookingTime(context.Background(), "chef-1", testDay, Selection{MenuID: "m1"}, 4, 0)
	if err != nil {
		t.Fatalf("menu selection failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
}

func TestEngine_FindSlotsWithCookingTime_InvalidSelection(t *testing.T) {
	eng := newEngine(newFakeSources())

	_, err := eng.FindSlotsWithCookingTime(context.Background(), "chef-1", testDay, Selection{DishIDs: []string{"d1"}}, 0, 0)
	if !errors.Is(err, model.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestEngine_FindSlotsWithCookingTime_SelectionTooLongForWindow(t *testing.T) {
	f := newFakeSources()
	// A dish needing more cook time than any window can host.
	f.dishes["d2"] = model.DishCookProfile{ID: "d2", CookTimeMinutes: 300, CookGroup: 12}
	eng := newEngine(f)

	slots, err := eng.FindSlotsWithCookingTime(context.Background(), "chef-1", testDay, Selection{DishIDs: []string{"d2"}}, 4, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots for an oversized session, got %+v", slots)
	}
}
