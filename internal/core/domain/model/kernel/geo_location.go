package kernel

import (
	"fmt"

	"mparcel/internal/pkg/errs"
	"mparcel/internal/pkg/guard"
)

// ErrGeoLocationIsNotConstructed indicates a GeoLocation that was not created
// via NewGeoLocation.
var ErrGeoLocationIsNotConstructed = errs.NewValueIsRequiredError("GeoLocation must be created via NewGeoLocation")

// GeoLocation is a latitude/longitude pair. Couriers report their last known
// position through it; panic alerts forward it to administrators.
type GeoLocation struct {
	lat float64
	lon float64

	guard guard.ConstructorGuard
}

// NewGeoLocation creates a GeoLocation, validating coordinate ranges.
func NewGeoLocation(lat, lon float64) (GeoLocation, error) {
	if lat < -90 || lat > 90 {
		return GeoLocation{}, errs.NewValueIsOutOfRangeError("latitude", lat, -90.0, 90.0)
	}
	if lon < -180 || lon > 180 {
		return GeoLocation{}, errs.NewValueIsOutOfRangeError("longitude", lon, -180.0, 180.0)
	}
	return GeoLocation{
		lat:   lat,
		lon:   lon,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the GeoLocation was created via NewGeoLocation.
func (l GeoLocation) Validate() error {
	return l.guard.Validate(ErrGeoLocationIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (l GeoLocation) Lat() float64 {
	return l.lat
}

// Lon returns the longitude in decimal degrees.
func (l GeoLocation) Lon() float64 {
	return l.lon
}

// String formats the coordinates for human-facing messages.
func (l GeoLocation) String() string {
	return fmt.Sprintf("%.6f, %.6f", l.lat, l.lon)
}
