package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Coordinates is a WGS84 position in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// FallbackCoordinates is used wherever a stored or submitted coordinate array
// is missing or too short to hold a (lng, lat) pair.
var FallbackCoordinates = Coordinates{Lat: 37.7749, Lng: -122.4194}

// Validate checks that both components are finite and within range.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrValidation)
	}
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrValidation)
	}
	return nil
}

// LngLat returns the pair in the [lng, lat] order used by GeoJSON and the
// directions API.
func (c Coordinates) LngLat() []float64 { return []float64{c.Lng, c.Lat} }

// Point returns c as an orb.Point (lng, lat).
func (c Coordinates) Point() orb.Point { return orb.Point{c.Lng, c.Lat} }

// CoordinatesFromLngLat converts a [lng, lat] array back to Coordinates.
// Arrays shorter than two elements yield FallbackCoordinates and ok=false.
func CoordinatesFromLngLat(pair []float64) (c Coordinates, ok bool) {
	if len(pair) < 2 {
		return FallbackCoordinates, false
	}
	return Coordinates{Lng: pair[0], Lat: pair[1]}, true
}

// OrFallback dereferences c, substituting FallbackCoordinates for nil.
func (c *Coordinates) OrFallback() (Coordinates, bool) {
	if c == nil {
		return FallbackCoordinates, false
	}
	return *c, true
}
