package admission

import (
	"encoding/json"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/outbox"
)

func committedEvent(s model.CommittedSession) outbox.Event {
	payload, _ := json.Marshal(map[string]any{
		"session_id":   s.ID,
		"chef_id":      s.ChefID,
		"customer_id":  s.CustomerID,
		"date":         s.Date.Format("2006-01-02"),
		"travel_start": s.TravelStart.UTC().Format(time.RFC3339),
		"start":        s.Start.UTC().Format(time.RFC3339),
		"end":          s.End.UTC().Format(time.RFC3339),
	})
	return outbox.Event{
		AggregateType: "booking_session",
		AggregateID:   s.ID,
		EventType:     "booking.session.committed.v1",
		Payload:       payload,
	}
}

func cancelledEvent(s model.CommittedSession, reason string) outbox.Event {
	cancelledAt := time.Now().UTC()
	if s.CancelledAt != nil {
		cancelledAt = s.CancelledAt.UTC()
	}
	payload, _ := json.Marshal(map[string]any{
		"session_id":   s.ID,
		"chef_id":      s.ChefID,
		"customer_id":  s.CustomerID,
		"start":        s.Start.UTC().Format(time.RFC3339),
		"end":          s.End.UTC().Format(time.RFC3339),
		"cancelled_at": cancelledAt.Format(time.RFC3339),
		"reason":       reason,
	})
	return outbox.Event{
		AggregateType: "booking_session",
		AggregateID:   s.ID,
		EventType:     "booking.session.cancelled.v1",
		Payload:       payload,
	}
}
