package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/eld"
	"github.com/pkordes/eld-logbook/internal/repo"
)

// TimeLogService derives and stores a trip's duty-status log.
type TimeLogService struct {
	trips  repo.TripRepo
	logs   repo.TimeLogRepo
	engine *eld.Engine
}

// NewTimeLogService constructs a TimeLogService. engine may be nil, in which
// case eld.New() is used.
func NewTimeLogService(trips repo.TripRepo, logs repo.TimeLogRepo, engine *eld.Engine) *TimeLogService {
	if engine == nil {
		engine = eld.New()
	}
	return &TimeLogService{trips: trips, logs: logs, engine: engine}
}

// Generate validates the leg measurements, derives the log for the trip and
// stores it, replacing any earlier log.
// Returns domain.ErrValidation for bad measurements and domain.ErrNotFound if
// the trip does not exist.
func (s *TimeLogService) Generate(ctx context.Context, tripID uuid.UUID, req domain.TimeLogRequest) (domain.DutyStatusLog, error) {
	if err := req.Validate(); err != nil {
		return domain.DutyStatusLog{}, err
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.DutyStatusLog{}, fmt.Errorf("service.TimeLogService.Generate: %w", err)
	}

	log := s.engine.Generate(req, eld.Stops{Pickup: trip.PickupLocation, Dropoff: trip.DropoffLocation})
	log.TripID = trip.ID

	stored, err := s.logs.Upsert(ctx, log)
	if err != nil {
		return domain.DutyStatusLog{}, fmt.Errorf("service.TimeLogService.Generate: %w", err)
	}
	return stored, nil
}

// Get returns the stored log for a trip.
// Returns domain.ErrNotFound if no log has been generated yet.
func (s *TimeLogService) Get(ctx context.Context, tripID uuid.UUID) (domain.DutyStatusLog, error) {
	log, err := s.logs.GetByTripID(ctx, tripID)
	if err != nil {
		return domain.DutyStatusLog{}, fmt.Errorf("service.TimeLogService.Get: %w", err)
	}
	return log, nil
}
