// Package distance estimates travel between a chef's base and a booking
// venue. The real route provider is an external service; the default
// implementation falls back to great-circle distance at an assumed urban
// driving speed so availability math still works without it.
package distance

import (
	"math"

	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

const earthRadiusKm = 6371.0

// Kilometers returns the great-circle distance between two points.
func Kilometers(a, b model.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
