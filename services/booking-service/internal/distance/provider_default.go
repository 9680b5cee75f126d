//go:build !protogen

package distance

import (
	"context"
	"log/slog"
	"time"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// Provider returns the travel duration between two coordinates.
type Provider interface {
	TravelDuration(ctx context.Context, origin, destination model.GeoPoint) (time.Duration, error)
}

type haversineProvider struct {
	speedKmh float64
}

// NewProvider returns the estimation provider. Without generated routing
// stubs the gRPC address is ignored and travel time is derived from
// great-circle distance at the configured average speed.
func NewProvider(_ *slog.Logger, _ string, speedKmh float64) (Provider, error) {
	return NewHaversineProvider(speedKmh), nil
}

// NewHaversineProvider estimates travel time from straight-line distance.
func NewHaversineProvider(speedKmh float64) Provider {
	if speedKmh <= 0 {
		speedKmh = 30
	}
	return &haversineProvider{speedKmh: speedKmh}
}

func (p *haversineProvider) TravelDuration(_ context.Context, origin, destination model.GeoPoint) (time.Duration, error) {
	km := Kilometers(origin, destination)
	hours := km / p.speedKmh
	return time.Duration(hours * float64(time.Hour)).Round(time.Minute), nil
}
