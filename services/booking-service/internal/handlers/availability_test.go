package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/availability"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

type stubSources struct {
	chef     model.Chef
	windows  []model.WeeklyWindow
	settings model.TimeSettings
	dishes   []model.DishCookProfile
}

func (s *stubSources) ChefProfile(_ context.Context, id string) (model.Chef, error) {
	if id != s.chef.ID {
		return model.Chef{}, model.ErrChefNotFound
	}
	return s.chef, nil
}

func (s *stubSources) WeeklyWindows(_ context.Context, _ string) ([]model.WeeklyWindow, error) {
	return s.windows, nil
}

func (s *stubSources) BlockedIntervals(_ context.Context, _ string, _, _ time.Time) ([]model.BlockedInterval, error) {
	return nil, nil
}

func (s *stubSources) CommittedSessions(_ context.Context, _ string, _, _ time.Time) ([]model.CommittedSession, error) {
	return nil, nil
}

func (s *stubSources) TimeSettings(_ context.Context, chefID string) (model.TimeSettings, error) {
	return s.settings, nil
}

func (s *stubSources) Dishes(_ context.Context, _ string, _ []string) ([]model.DishCookProfile, error) {
	return s.dishes, nil
}

func (s *stubSources) MenuDishes(_ context.Context, _, _ string) ([]model.DishCookProfile, error) {
	return s.dishes, nil
}

func testHandler() *AvailabilityHandler {
	src := &stubSources{
		chef: model.Chef{ID: "chef-1", Name: "Ayesha", Status: model.ChefStatusApproved},
		windows: []model.WeeklyWindow{
			// Monday 14:00-18:00.
			{ChefID: "chef-1", Weekday: 1, StartMinute: 14 * 60, EndMinute: 18 * 60},
		},
		settings: model.DefaultTimeSettings("chef-1"),
		dishes: []model.DishCookProfile{
			{ID: "d1", ChefID: "chef-1", Name: "Biryani", CookTimeMinutes: 45, CookGroup: 6},
		},
	}
	engine := availability.NewEngine(src, src, src, src, src, src, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAvailabilityHandler(engine, nil, logger)
}

func TestSlotsEndpoint(t *testing.T) {
	h := testHandler()

	// 2026-09-07 is a Monday.
	req := httptest.NewRequest(http.MethodGet, "http://example.com/slots?chef_id=chef-1&date=2026-09-07", nil)
	rw := httptest.NewRecorder()
	h.Slots(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rw.Code, rw.Body.String())
	}

	var items []slotItem
	if err := json.Unmarshal(rw.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d slots, want 1", len(items))
	}
	if items[0].StartTime != "2026-09-07T14:00:00Z" || items[0].DurationMinutes != 240 {
		t.Fatalf("unexpected slot %+v", items[0])
	}
	if items[0].ChefName != "Ayesha" || items[0].Date != "2026-09-07" {
		t.Fatalf("unexpected slot metadata %+v", items[0])
	}
}

func TestSlotsEndpointEmptyDayIsOK(t *testing.T) {
	h := testHandler()

	// A Tuesday with no weekly window.
	req := httptest.NewRequest(http.MethodGet, "http://example.com/slots?chef_id=chef-1&date=2026-09-08", nil)
	rw := httptest.NewRecorder()
	h.Slots(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}
	if body := rw.Body.String(); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestSlotsEndpointErrors(t *testing.T) {
	h := testHandler()

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"missing chef", "http://example.com/slots?date=2026-09-07", http.StatusBadRequest},
		{"bad date", "http://example.com/slots?chef_id=chef-1&date=nope", http.StatusBadRequest},
		{"unknown chef", "http://example.com/slots?chef_id=ghost&date=2026-09-07", http.StatusNotFound},
		{"reversed range", "http://example.com/slots?chef_id=chef-1&from=2026-09-08&to=2026-09-07", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := httptest.NewRecorder()
			h.Slots(rw, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if rw.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rw.Code, rw.Body.String())
			}
		})
	}
}

func TestSlotsWithCookingTimeEndpoint(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet,
		"http://example.com/slots/cooking?chef_id=chef-1&date=2026-09-07&guests=6&dish_ids=d1", nil)
	rw := httptest.NewRecorder()
	h.SlotsWithCookingTime(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rw.Code, rw.Body.String())
	}

	var items []slotItem
	if err := json.Unmarshal(rw.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d slots, want 1", len(items))
	}
	// 240 minute window minus 45 cook and 60 prep/cleanup leaves 135.
	if items[0].DurationMinutes != 135 {
		t.Fatalf("usable duration = %d, want 135", items[0].DurationMinutes)
	}
	if items[0].Note == "" {
		t.Fatalf("expected explanatory note on slot")
	}
}

func TestCheckEndpoint(t *testing.T) {
	h := testHandler()

	check := func(t *testing.T, url string, want bool) {
		t.Helper()
		rw := httptest.NewRecorder()
		h.Check(rw, httptest.NewRequest(http.MethodGet, url, nil))
		if rw.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rw.Code, rw.Body.String())
		}
		var resp map[string]bool
		if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp["available"] != want {
			t.Fatalf("available = %v, want %v", resp["available"], want)
		}
	}

	check(t, "http://example.com/check?chef_id=chef-1&start=2026-09-07T15:00:00Z&end=2026-09-07T17:00:00Z", true)
	check(t, "http://example.com/check?chef_id=chef-1&start=2026-09-07T17:00:00Z&end=2026-09-07T19:00:00Z", false)
}
