package availability

import (
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// SessionTimes are the derived start times for a booked session. The guests
// see Start; the chef's occupied interval begins at BeginTravel.
type SessionTimes struct {
	Start       time.Time
	BeginCook   time.Time
	BeginTravel time.Time
}

// LeadBuffer is the time subtracted before the session's nominal start when
// the session is fed back into the slot algebra as a busy interval.
func (st SessionTimes) LeadBuffer() time.Duration {
	return st.Start.Sub(st.BeginTravel)
}

// ComputeSessionTimes derives when the chef must start cooking and start
// travelling for a session beginning at start. Cooking begins one prep
// period before the serving start; travel begins before that, padded by the
// chef's travel buffer percentage.
func ComputeSessionTimes(start time.Time, travel time.Duration, settings model.TimeSettings) SessionTimes {
	beginCook := start.Add(-time.Duration(settings.PrepMinutes) * time.Minute)

	if travel < 0 {
		travel = 0
	}
	padded := time.Duration(float64(travel) * (1 + settings.TravelBufferPercent/100))
	beginTravel := beginCook.Add(-padded)

	return SessionTimes{
		Start:       start,
		BeginCook:   beginCook,
		BeginTravel: beginTravel,
	}
}
