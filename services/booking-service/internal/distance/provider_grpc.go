//go:build protogen

package distance

import (
	"context"
	"log/slog"
	"time"

	"github.com/chefbook-app/chefbook/libs/grpcx"
	routingv1 "github.com/chefbook-app/chefbook/protos/gen/routing/v1"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// Provider returns the travel duration between two coordinates.
type Provider interface {
	TravelDuration(ctx context.Context, origin, destination model.GeoPoint) (time.Duration, error)
}

type grpcProvider struct {
	client   routingv1.RoutingServiceClient
	fallback Provider
}

// NewProvider dials the routing service. When no address is configured or
// the dial fails, the haversine fallback keeps availability math working.
func NewProvider(logger *slog.Logger, addr string, speedKmh float64) (Provider, error) {
	fallback := NewHaversineProvider(speedKmh)
	if addr == "" {
		return fallback, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := grpcx.Dial(ctx, addr, grpcx.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		logger.Warn("routing service unavailable, using haversine estimates", "err", err)
		return fallback, nil
	}
	logger.Info("grpc routing provider enabled", "addr", addr)
	return &grpcProvider{client: routingv1.NewRoutingServiceClient(conn), fallback: fallback}, nil
}

// NewHaversineProvider estimates travel time from straight-line distance.
func NewHaversineProvider(speedKmh float64) Provider {
	if speedKmh <= 0 {
		speedKmh = 30
	}
	return &haversineProvider{speedKmh: speedKmh}
}

type haversineProvider struct {
	speedKmh float64
}

func (p *haversineProvider) TravelDuration(_ context.Context, origin, destination model.GeoPoint) (time.Duration, error) {
	km := Kilometers(origin, destination)
	hours := km / p.speedKmh
	return time.Duration(hours * float64(time.Hour)).Round(time.Minute), nil
}

func (p *grpcProvider) TravelDuration(ctx context.Context, origin, destination model.GeoPoint) (time.Duration, error) {
	resp, err := p.client.GetTravelDuration(ctx, &routingv1.TravelDurationRequest{
		Origin:      &routingv1.LatLng{Lat: origin.Lat, Lng: origin.Lng},
		Destination: &routingv1.LatLng{Lat: destination.Lat, Lng: destination.Lng},
	})
	if err != nil {
		return p.fallback.TravelDuration(ctx, origin, destination)
	}
	return time.Duration(resp.GetDurationSeconds()) * time.Second, nil
}
