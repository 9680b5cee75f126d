package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// ChefRegistrar seeds the local chef record and its default time settings
// when a chef is approved upstream.
type ChefRegistrar interface {
	RegisterChef(ctx context.Context, chef model.Chef) error
	EnsureDefaultTimeSettings(ctx context.Context, chefID string) error
}

type chefApprovedPayload struct {
	ChefID string  `json:"chef_id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// ChefApprovedHandler processes chef.approved.v1 events. Registration is an
// upsert, so replays after an inbox wipe stay harmless.
func ChefApprovedHandler(registrar ChefRegistrar, logger *slog.Logger) Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var payload chefApprovedPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			return fmt.Errorf("decode chef.approved payload: %w", err)
		}
		if payload.ChefID == "" {
			return fmt.Errorf("chef.approved payload missing chef_id")
		}

		chef := model.Chef{
			ID:       payload.ChefID,
			Name:     payload.Name,
			Status:   model.ChefStatusApproved,
			Location: model.GeoPoint{Lat: payload.Lat, Lng: payload.Lng},
		}
		if err := registrar.RegisterChef(ctx, chef); err != nil {
			return fmt.Errorf("register chef %s: %w", payload.ChefID, err)
		}
		if err := registrar.EnsureDefaultTimeSettings(ctx, payload.ChefID); err != nil {
			return fmt.Errorf("seed time settings for %s: %w", payload.ChefID, err)
		}

		logger.Info("chef registered for booking", "chef_id", payload.ChefID)
		return nil
	}
}
