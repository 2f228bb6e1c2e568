// Package service contains the business logic for the ELD Logbook API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/repo"
)

// TripService implements business logic for Trip operations.
// It holds the drivers repo because creating a trip requires verifying the
// owning driver exists.
type TripService struct {
	repo    repo.TripRepo
	drivers repo.DriverRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(r repo.TripRepo, drivers repo.DriverRepo) *TripService {
	return &TripService{repo: r, drivers: drivers}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if input violates business rules, including an
// unknown driver.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.CurrentLocation = strings.TrimSpace(trip.CurrentLocation)
	trip.PickupLocation = strings.TrimSpace(trip.PickupLocation)
	trip.DropoffLocation = strings.TrimSpace(trip.DropoffLocation)

	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	if _, err := s.drivers.GetByID(ctx, trip.DriverID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, fmt.Errorf("%w: driver %s does not exist", domain.ErrValidation, trip.DriverID)
		}
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips and the total number of trips.
// Always returns a non-nil slice.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// validateTrip enforces the rules for a new trip.
//   - All three locations must be non-empty.
//   - CycleHoursUsed must be within [0, MaxCycleHours].
//   - Coordinates, when present, must be in range.
//   - DriverID must be set.
func validateTrip(trip domain.Trip) error {
	for _, f := range []struct{ name, v string }{
		{"current_location", trip.CurrentLocation},
		{"pickup_location", trip.PickupLocation},
		{"dropoff_location", trip.DropoffLocation},
	} {
		if f.v == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}

	h := trip.CycleHoursUsed
	if math.IsNaN(h) || h < 0 || h > domain.MaxCycleHours {
		return fmt.Errorf("%w: current_cycle_used must be between 0 and %d", domain.ErrValidation, domain.MaxCycleHours)
	}

	for _, c := range []*domain.Coordinates{trip.CurrentCoordinates, trip.PickupCoordinates, trip.DropoffCoordinates} {
		if c == nil {
			continue
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}

	if trip.DriverID == uuid.Nil {
		return fmt.Errorf("%w: driver is required", domain.ErrValidation)
	}
	return nil
}
