// Package pipeline runs the per-page trip pipeline of the dashboard: load the
// trip (and driver), fetch the two route legs in order, then hand the legs'
// measurements to the backend to obtain the day's duty-status log.
//
// Only a failure to load the trip is fatal. Later failures are recorded on
// the View so the page can still render what it has.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/eld-logbook/internal/domain"
)

// Leg errors reported in View.RouteErr.
var (
	// ErrRouteMismatch is reported when leg 1's geometry does not end where
	// leg 2's begins, at the pickup.
	ErrRouteMismatch = errors.New("route legs are not contiguous")
	// ErrEmptyLeg is reported when the router returns a leg with no geometry.
	ErrEmptyLeg = errors.New("route leg has no geometry")
)

// TripLoader is the subset of the trips API client the pipeline needs.
type TripLoader interface {
	GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	GetDriver(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	CreateTimeLog(ctx context.Context, tripID uuid.UUID, req domain.TimeLogRequest) (domain.DutyStatusLog, error)
}

// Router computes one driving leg.
type Router interface {
	Route(ctx context.Context, from, to domain.Coordinates) (domain.RouteLeg, error)
}

// View is everything a trip page or log sheet shows.
type View struct {
	Trip domain.Trip

	Driver    domain.Driver
	DriverErr error

	// Stop positions after fallback substitution.
	Start   domain.Coordinates
	Pickup  domain.Coordinates
	Dropoff domain.Coordinates

	Route    domain.Route
	RouteErr error

	Log    domain.DutyStatusLog
	LogErr error
}

// HasRoute reports whether both legs were computed.
func (v View) HasRoute() bool { return v.RouteErr == nil && len(v.Route.ToPickup.Geometry) > 0 }

// Pipeline is safe for concurrent use; every call is independent.
type Pipeline struct {
	trips  TripLoader
	router Router
	logger *slog.Logger
}

// New returns a Pipeline. A nil logger uses slog.Default().
func New(trips TripLoader, router Router, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{trips: trips, router: router, logger: logger}
}

// Route loads the trip and computes its two legs. The returned error is
// non-nil only when the trip itself cannot be loaded.
func (p *Pipeline) Route(ctx context.Context, tripID uuid.UUID) (View, error) {
	trip, err := p.trips.GetTrip(ctx, tripID)
	if err != nil {
		return View{}, fmt.Errorf("pipeline.Pipeline.Route: %w", err)
	}

	v := View{Trip: trip}
	v.Start = p.stop(ctx, trip.ID, "current", trip.CurrentCoordinates)
	v.Pickup = p.stop(ctx, trip.ID, "pickup", trip.PickupCoordinates)
	v.Dropoff = p.stop(ctx, trip.ID, "dropoff", trip.DropoffCoordinates)

	v.Route, v.RouteErr = p.legs(ctx, v.Start, v.Pickup, v.Dropoff)
	if v.RouteErr != nil {
		p.logger.ErrorContext(ctx, "route failed", "trip_id", trip.ID, "error", v.RouteErr)
	}
	return v, nil
}

// Build runs the full pipeline for a log sheet: trip, driver, both legs and
// the duty-status log. The log is only requested once both legs exist.
func (p *Pipeline) Build(ctx context.Context, tripID uuid.UUID) (View, error) {
	v, err := p.Route(ctx, tripID)
	if err != nil {
		return View{}, fmt.Errorf("pipeline.Pipeline.Build: %w", err)
	}

	v.Driver, v.DriverErr = p.trips.GetDriver(ctx, v.Trip.DriverID)
	if v.DriverErr != nil {
		p.logger.ErrorContext(ctx, "driver lookup failed", "driver_id", v.Trip.DriverID, "error", v.DriverErr)
	}

	if v.RouteErr != nil {
		v.LogErr = fmt.Errorf("time log skipped: %w", v.RouteErr)
		return v, nil
	}

	v.Log, v.LogErr = p.trips.CreateTimeLog(ctx, v.Trip.ID, domain.TimeLogRequestFromRoute(v.Route))
	if v.LogErr != nil {
		p.logger.ErrorContext(ctx, "time log failed", "trip_id", v.Trip.ID, "error", v.LogErr)
	}
	return v, nil
}

// legs fetches start → pickup, then pickup → dropoff.
func (p *Pipeline) legs(ctx context.Context, start, pickup, dropoff domain.Coordinates) (domain.Route, error) {
	first, err := p.router.Route(ctx, start, pickup)
	if err != nil {
		return domain.Route{}, fmt.Errorf("leg 1: %w", err)
	}
	if len(first.Geometry) == 0 {
		return domain.Route{}, fmt.Errorf("leg 1: %w", ErrEmptyLeg)
	}
	second, err := p.router.Route(ctx, pickup, dropoff)
	if err != nil {
		return domain.Route{}, fmt.Errorf("leg 2: %w", err)
	}
	if len(second.Geometry) == 0 {
		return domain.Route{}, fmt.Errorf("leg 2: %w", ErrEmptyLeg)
	}

	r := domain.Route{ToPickup: first, ToDropoff: second}
	if !r.Contiguous() {
		return domain.Route{}, ErrRouteMismatch
	}
	return r, nil
}

func (p *Pipeline) stop(ctx context.Context, tripID uuid.UUID, name string, c *domain.Coordinates) domain.Coordinates {
	got, ok := c.OrFallback()
	if !ok {
		p.logger.WarnContext(ctx, "missing coordinates, using fallback",
			"trip_id", tripID,
			"stop", name,
			"lat", got.Lat,
			"lng", got.Lng,
		)
	}
	return got
}
