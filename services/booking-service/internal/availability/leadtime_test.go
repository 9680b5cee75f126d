package availability

import (
	"testing"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

func TestComputeSessionTimes(t *testing.T) {
	settings := model.TimeSettings{
		PrepMinutes:         30,
		TravelBufferPercent: 20,
	}
	start := time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC)

	st := ComputeSessionTimes(start, 25*time.Minute, settings)
	if !st.BeginCook.Equal(start.Add(-30 * time.Minute)) {
		t.Fatalf("expected cook start 17:30, got %s", st.BeginCook.Format("15:04"))
	}
	// 25m travel padded by 20% = 30m before cook start.
	if !st.BeginTravel.Equal(start.Add(-60 * time.Minute)) {
		t.Fatalf("expected travel start 17:00, got %s", st.BeginTravel.Format("15:04"))
	}
	if st.LeadBuffer() != time.Hour {
		t.Fatalf("expected 1h lead buffer, got %v", st.LeadBuffer())
	}
}

func TestComputeSessionTimes_NoTravel(t *testing.T) {
	settings := model.TimeSettings{PrepMinutes: 45, TravelBufferPercent: 50}
	start := time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC)

	st := ComputeSessionTimes(start, 0, settings)
	if !st.BeginTravel.Equal(st.BeginCook) {
		t.Fatal("zero travel must not add buffer")
	}
	if st.LeadBuffer() != 45*time.Minute {
		t.Fatalf("expected lead buffer equal to prep time, got %v", st.LeadBuffer())
	}
}

func TestComputeSessionTimes_NegativeTravelTreatedAsZero(t *testing.T) {
	settings := model.TimeSettings{PrepMinutes: 30}
	start := time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC)

	st := ComputeSessionTimes(start, -10*time.Minute, settings)
	if st.LeadBuffer() != 30*time.Minute {
		t.Fatalf("expected 30m lead buffer, got %v", st.LeadBuffer())
	}
}
