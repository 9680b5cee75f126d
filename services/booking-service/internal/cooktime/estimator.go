// Package cooktime estimates how much active cooking time a dish selection
// needs for a given party size.
package cooktime

import (
	"fmt"
	"math"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// Estimate is the result of a cook-time calculation. Cooking covers active
// cook cycles only; prep and cleanup surround the cook window and are
// reported separately so the UI can show them apart.
type Estimate struct {
	CookMinutes     float64
	OverheadMinutes int // prep + cleanup
}

// TotalMinutes is the full span a session occupies on the chef's clock,
// excluding travel.
func (e Estimate) TotalMinutes() float64 {
	return e.CookMinutes + float64(e.OverheadMinutes)
}

// ForSelection computes the active cook time for the given dishes and guest
// count under the chef's time settings.
//
// Each dish cooks in cycles of CookGroup guests: cook time multiplies by
// ceil(guests / cookGroup). The summed total scales by the chef's cooking
// efficiency factor.
func ForSelection(dishes []model.DishCookProfile, guests int, settings model.TimeSettings) (Estimate, error) {
	if guests <= 0 {
		return Estimate{}, fmt.Errorf("%w: guest count must be positive, got %d", model.ErrInvalidSelection, guests)
	}
	if settings.MaxGuestsPerSession > 0 && guests > settings.MaxGuestsPerSession {
		return Estimate{}, fmt.Errorf("%w: %d guests exceeds the per-session limit of %d", model.ErrInvalidSelection, guests, settings.MaxGuestsPerSession)
	}
	if len(dishes) == 0 {
		return Estimate{}, fmt.Errorf("%w: no dishes selected", model.ErrInvalidSelection)
	}
	if settings.MaxDishesPerSession > 0 && len(dishes) > settings.MaxDishesPerSession {
		return Estimate{}, fmt.Errorf("%w: %d dishes exceeds the per-session limit of %d", model.ErrInvalidSelection, len(dishes), settings.MaxDishesPerSession)
	}

	var total float64
	for _, d := range dishes {
		group := d.CookGroup
		if group < 1 {
			group = 1
		}
		cycles := math.Ceil(float64(guests) / float64(group))
		total += d.CookTimeMinutes * cycles
	}

	efficiency := settings.CookingEfficiency
	if efficiency < 0.5 || efficiency > 1.0 {
		efficiency = 1.0
	}
	total *= efficiency

	return Estimate{
		CookMinutes:     total,
		OverheadMinutes: settings.PrepMinutes + settings.CleanupMinutes,
	}, nil
}
