package cooktime

import (
	"errors"
	"testing"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

func testSettings() model.TimeSettings {
	s := model.DefaultTimeSettings("chef-1")
	s.PrepMinutes = 30
	s.CleanupMinutes = 30
	s.CookingEfficiency = 1.0
	s.MaxDishesPerSession = 3
	s.MaxGuestsPerSession = 10
	return s
}

func TestForSelection_SingleDish(t *testing.T) {
	dishes := []model.DishCookProfile{
		{ID: "d1", Name: "Risotto", CookTimeMinutes: 40, CookGroup: 4},
	}

	// 6 guests / group of 4 -> 2 cook cycles.
	est, err := ForSelection(dishes, 6, testSettings())
	if err != nil {
		t.Fatalf("ForSelection failed: %v", err)
	}
	if est.CookMinutes != 80 {
		t.Fatalf("expected 80 cook minutes, got %v", est.CookMinutes)
	}
	if est.OverheadMinutes != 60 {
		t.Fatalf("expected 60 overhead minutes, got %d", est.OverheadMinutes)
	}
	if est.TotalMinutes() != 140 {
		t.Fatalf("expected 140 total minutes, got %v", est.TotalMinutes())
	}
}

func TestForSelection_EfficiencyScalesCookOnly(t *testing.T) {
	s := testSettings()
	s.CookingEfficiency = 0.5

	dishes := []model.DishCookProfile{
		{ID: "d1", CookTimeMinutes: 60, CookGroup: 10},
		{ID: "d2", CookTimeMinutes: 20, CookGroup: 2},
	}

	// 4 guests: d1 is 1 cycle (60), d2 is 2 cycles (40). 100 * 0.5 = 50.
	est, err := ForSelection(dishes, 4, s)
	if err != nil {
		t.Fatalf("ForSelection failed: %v", err)
	}
	if est.CookMinutes != 50 {
		t.Fatalf("expected 50 cook minutes, got %v", est.CookMinutes)
	}
	if est.OverheadMinutes != 60 {
		t.Fatalf("overhead must not scale with efficiency, got %d", est.OverheadMinutes)
	}
}

func TestForSelection_CookGroupFloor(t *testing.T) {
	dishes := []model.DishCookProfile{
		{ID: "d1", CookTimeMinutes: 15, CookGroup: 0},
	}
	est, err := ForSelection(dishes, 3, testSettings())
	if err != nil {
		t.Fatalf("ForSelection failed: %v", err)
	}
	// CookGroup below 1 is treated as 1: one cycle per guest.
	if est.CookMinutes != 45 {
		t.Fatalf("expected 45 cook minutes, got %v", est.CookMinutes)
	}
}

func TestForSelection_InvalidSelections(t *testing.T) {
	dish := model.DishCookProfile{ID: "d1", CookTimeMinutes: 10, CookGroup: 2}

	cases := []struct {
		name   string
		dishes []model.DishCookProfile
		guests int
	}{
		{"zero guests", []model.DishCookProfile{dish}, 0},
		{"negative guests", []model.DishCookProfile{dish}, -2},
		{"too many guests", []model.DishCookProfile{dish}, 11},
		{"no dishes", nil, 4},
		{"too many dishes", []model.DishCookProfile{dish, dish, dish, dish}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ForSelection(tc.dishes, tc.guests, testSettings())
			if !errors.Is(err, model.ErrInvalidSelection) {
				t.Fatalf("expected ErrInvalidSelection, got %v", err)
			}
		})
	}
}
