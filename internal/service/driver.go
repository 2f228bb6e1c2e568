package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/repo"
)

// DriverService exposes driver profiles read-only.
type DriverService struct {
	repo repo.DriverRepo
}

// NewDriverService constructs a DriverService backed by the provided DriverRepo.
func NewDriverService(r repo.DriverRepo) *DriverService {
	return &DriverService{repo: r}
}

// GetByID returns a driver profile.
// Returns domain.ErrNotFound if no driver with that ID exists.
func (s *DriverService) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.GetByID: %w", err)
	}
	return d, nil
}
