package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		DriverID:           uuid.New(),
		CurrentLocation:    "Reno, NV",
		PickupLocation:     "Sacramento, CA",
		DropoffLocation:    "San Francisco, CA",
		CurrentCoordinates: &domain.Coordinates{Lat: 39.5296, Lng: -119.8138},
		PickupCoordinates:  &domain.Coordinates{Lat: 38.5816, Lng: -121.4944},
		DropoffCoordinates: &domain.Coordinates{Lat: 37.7749, Lng: -122.4194},
		CycleHoursUsed:     12.5,
	}
}

func echoRepo() *mockTripRepo {
	// A repo that echoes whatever it receives back; useful for Create tests
	// that only care about validation logic, not what the DB returns.
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoRepo(), knownDriverRepo())

	trip := validTrip()
	trip.PickupLocation = "  Sacramento, CA  "

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Sacramento, CA", got.PickupLocation, "locations are trimmed")
}

func TestTripService_Create_MissingLocation(t *testing.T) {
	cases := map[string]func(*domain.Trip){
		"current": func(t *domain.Trip) { t.CurrentLocation = "" },
		"pickup":  func(t *domain.Trip) { t.PickupLocation = "   " },
		"dropoff": func(t *domain.Trip) { t.DropoffLocation = "\t" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc := service.NewTripService(echoRepo(), knownDriverRepo())
			trip := validTrip()
			mutate(&trip)

			_, err := svc.Create(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Create_CycleHoursOutOfRange(t *testing.T) {
	for _, h := range []float64{-1, 70.5, math.NaN()} {
		svc := service.NewTripService(echoRepo(), knownDriverRepo())
		trip := validTrip()
		trip.CycleHoursUsed = h

		_, err := svc.Create(context.Background(), trip)

		assert.ErrorIs(t, err, domain.ErrValidation, "cycle hours %v", h)
	}
}

func TestTripService_Create_CycleHoursBoundaries(t *testing.T) {
	for _, h := range []float64{0, domain.MaxCycleHours} {
		svc := service.NewTripService(echoRepo(), knownDriverRepo())
		trip := validTrip()
		trip.CycleHoursUsed = h

		_, err := svc.Create(context.Background(), trip)

		assert.NoError(t, err, "cycle hours %v", h)
	}
}

func TestTripService_Create_BadCoordinates(t *testing.T) {
	svc := service.NewTripService(echoRepo(), knownDriverRepo())

	trip := validTrip()
	trip.PickupCoordinates = &domain.Coordinates{Lat: 91, Lng: 0}

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_NilCoordinatesAllowed(t *testing.T) {
	svc := service.NewTripService(echoRepo(), knownDriverRepo())

	trip := validTrip()
	trip.CurrentCoordinates = nil

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_MissingDriver(t *testing.T) {
	svc := service.NewTripService(echoRepo(), knownDriverRepo())

	trip := validTrip()
	trip.DriverID = uuid.Nil

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_UnknownDriver(t *testing.T) {
	drivers := &mockDriverRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Driver, error) {
			return domain.Driver{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(echoRepo(), drivers)

	_, err := svc.Create(context.Background(), validTrip())

	// An unknown driver is a bad request body, not a missing URL resource.
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	svc := service.NewTripService(r, knownDriverRepo())

	_, err := svc.Create(context.Background(), validTrip())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

// ---- GetByID tests ---------------------------------------------------------

func TestTripService_GetByID_Found(t *testing.T) {
	want := validTrip()
	want.ID = uuid.New()

	r := &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return want, nil
		},
	}
	svc := service.NewTripService(r, knownDriverRepo())

	got, err := svc.GetByID(context.Background(), want.ID)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r, knownDriverRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListPaged tests -------------------------------------------------------

func TestTripService_ListPaged(t *testing.T) {
	var gotParams domain.PaginationParams
	r := &mockTripRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			gotParams = p
			return nil, 41, nil
		},
	}
	svc := service.NewTripService(r, knownDriverRepo())

	trips, total, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 3, Limit: 20})

	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Equal(t, int64(41), total)
	assert.Equal(t, 3, gotParams.Page)
}
