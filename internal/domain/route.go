package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Tolerances for Route.Contiguous, in metres. The directions service snaps a
// waypoint onto the road network, so a leg's endpoint may sit some way from
// the requested coordinates; both legs snap the same pickup to the same spot.
const (
	JunctionToleranceMeters = 1.0
	SnapToleranceMeters     = 500.0
)

// RouteLeg is one directions result between two points. Legs are computed on
// demand and never persisted.
type RouteLeg struct {
	From Coordinates
	To   Coordinates
	// Geometry is the ordered polyline as [lng, lat] pairs.
	Geometry        [][2]float64
	DistanceMeters  float64
	DurationSeconds float64
}

// Route is the two-leg path of a trip: start → pickup, pickup → dropoff.
type Route struct {
	ToPickup  RouteLeg
	ToDropoff RouteLeg
}

// Contiguous reports whether the drawn path is unbroken at the pickup: leg 1's
// last point meets leg 2's first point within JunctionToleranceMeters, and
// both lie within SnapToleranceMeters of the pickup. A leg without geometry
// is never contiguous.
func (r Route) Contiguous() bool {
	end, ok := r.ToPickup.last()
	if !ok {
		return false
	}
	begin, ok := r.ToDropoff.first()
	if !ok {
		return false
	}
	pickup := r.ToPickup.To.Point()
	return geo.Distance(end, begin) <= JunctionToleranceMeters &&
		geo.Distance(end, pickup) <= SnapToleranceMeters &&
		geo.Distance(begin, pickup) <= SnapToleranceMeters
}

func (l RouteLeg) first() (orb.Point, bool) {
	if len(l.Geometry) == 0 {
		return orb.Point{}, false
	}
	return orb.Point(l.Geometry[0]), true
}

func (l RouteLeg) last() (orb.Point, bool) {
	if len(l.Geometry) == 0 {
		return orb.Point{}, false
	}
	return orb.Point(l.Geometry[len(l.Geometry)-1]), true
}

// DistanceMeters is the combined length of both legs.
func (r Route) DistanceMeters() float64 {
	return r.ToPickup.DistanceMeters + r.ToDropoff.DistanceMeters
}

// DurationSeconds is the combined driving time of both legs.
func (r Route) DurationSeconds() float64 {
	return r.ToPickup.DurationSeconds + r.ToDropoff.DurationSeconds
}
