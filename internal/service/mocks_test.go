package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockDriverRepo is a hand-written test double for repo.DriverRepo.
type mockDriverRepo struct {
	create  func(ctx context.Context, d domain.Driver) (domain.Driver, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Driver, error)
}

func (m *mockDriverRepo) Create(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	return m.create(ctx, d)
}
func (m *mockDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return m.getByID(ctx, id)
}

var _ repo.DriverRepo = (*mockDriverRepo)(nil)

// mockTimeLogRepo is a hand-written test double for repo.TimeLogRepo.
type mockTimeLogRepo struct {
	upsert      func(ctx context.Context, log domain.DutyStatusLog) (domain.DutyStatusLog, error)
	getByTripID func(ctx context.Context, tripID uuid.UUID) (domain.DutyStatusLog, error)
}

func (m *mockTimeLogRepo) Upsert(ctx context.Context, log domain.DutyStatusLog) (domain.DutyStatusLog, error) {
	return m.upsert(ctx, log)
}
func (m *mockTimeLogRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.DutyStatusLog, error) {
	return m.getByTripID(ctx, tripID)
}

var _ repo.TimeLogRepo = (*mockTimeLogRepo)(nil)

// knownDriverRepo returns a driver repo that finds every ID.
func knownDriverRepo() *mockDriverRepo {
	return &mockDriverRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Driver, error) {
			return domain.Driver{ID: id, FirstName: "John", LastName: "Driver"}, nil
		},
	}
}
