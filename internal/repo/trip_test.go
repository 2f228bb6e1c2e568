package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-logbook/internal/config"
	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/repo"
	"github.com/pkordes/eld-logbook/testutil"
)

// tripFixture returns a domain.Trip owned by the seeded driver.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	return domain.Trip{
		DriverID:           uuid.MustParse(config.DefaultDriverID),
		CurrentLocation:    "Warehouse A, Reno, NV",
		PickupLocation:     "Client X, Sacramento, CA",
		DropoffLocation:    "Client Y, San Francisco, CA",
		CurrentCoordinates: &domain.Coordinates{Lat: 39.5296, Lng: -119.8138},
		PickupCoordinates:  &domain.Coordinates{Lat: 38.5816, Lng: -121.4944},
		DropoffCoordinates: &domain.Coordinates{Lat: 37.7749, Lng: -122.4194},
		CycleHoursUsed:     6,
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := repo.NewTripRepo(testutil.NewTx(t))
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.DriverID, got.DriverID)
	assert.Equal(t, input.PickupLocation, got.PickupLocation)
	require.NotNil(t, got.PickupCoordinates)
	assert.Equal(t, *input.PickupCoordinates, *got.PickupCoordinates)
	assert.InDelta(t, 6.0, got.CycleHoursUsed, 1e-9)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestTripRepo_Create_NilCoordinates(t *testing.T) {
	r := repo.NewTripRepo(testutil.NewTx(t))

	input := tripFixture()
	input.DropoffCoordinates = nil

	got, err := r.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Nil(t, got.DropoffCoordinates, "coordinates should stay nil when not provided")
	assert.NotNil(t, got.CurrentCoordinates)
}

func TestTripRepo_GetByID(t *testing.T) {
	r := repo.NewTripRepo(testutil.NewTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.CurrentLocation, got.CurrentLocation)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTripRepo(testutil.NewTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListPaged(t *testing.T) {
	r := repo.NewTripRepo(testutil.NewTx(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, tripFixture())
		require.NoError(t, err)
	}

	page, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.GreaterOrEqual(t, total, int64(3))

	past, pastTotal, err := r.ListPaged(ctx, domain.PaginationParams{Page: 1000, Limit: 2})

	require.NoError(t, err)
	assert.Empty(t, past)
	assert.Equal(t, total, pastTotal, "total is reported even past the last page")
}
