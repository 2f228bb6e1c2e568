package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/handler"
	"github.com/pkordes/eld-logbook/internal/handler/gen"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock into the generated chi router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(svc handler.TripServicer) http.Handler {
	srv := handler.NewServer(svc, nil, nil)
	return gen.Handler(gen.NewStrictHandler(srv, nil))
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:                 uuid.New(),
		DriverID:           uuid.New(),
		CurrentLocation:    "Reno, NV",
		PickupLocation:     "Sacramento, CA",
		DropoffLocation:    "San Francisco, CA",
		CurrentCoordinates: &domain.Coordinates{Lat: 39.5296, Lng: -119.8138},
		PickupCoordinates:  &domain.Coordinates{Lat: 38.5816, Lng: -121.4944},
		CycleHoursUsed:     8,
		CreatedAt:          time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// ---- POST /api/trips -------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	var got domain.Trip
	svc := &mockTripServicer{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			got = trip
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"driver":              fixture.DriverID.String(),
		"current_location":    "Reno, NV",
		"pickup_location":     "Sacramento, CA",
		"dropoff_location":    "San Francisco, CA",
		"current_cycle_used":  8,
		"current_coordinates": map[string]any{"lat": 39.5296, "lng": -119.8138},
		"pickup_coordinates":  map[string]any{"lat": 38.5816, "lng": -121.4944},
		"dropoff_coordinates": map[string]any{"lat": 37.7749, "lng": -122.4194},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, got.DropoffCoordinates, "request coordinates reach the service")
	assert.InDelta(t, 37.7749, got.DropoffCoordinates.Lat, 1e-9)
	assert.Equal(t, fixture.DriverID, got.DriverID)

	var resp gen.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.Id)
	assert.Equal(t, fixture.PickupLocation, resp.PickupLocation)
	assert.Nil(t, resp.DropoffCoordinates, "nil coordinates are omitted")
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: pickup_location is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{
		"driver":             uuid.NewString(),
		"current_location":   "Reno, NV",
		"pickup_location":    "",
		"dropoff_location":   "San Francisco, CA",
		"current_cycle_used": 0,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp gen.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "pickup_location is required", resp.Error.Message)
}

func TestCreateTrip_500_ServiceError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, errors.New("db down")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/trips", jsonBody(t, map[string]any{"driver": uuid.NewString()}))
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ---- GET /api/trips --------------------------------------------------------

func TestListTrips_200(t *testing.T) {
	trips := []domain.Trip{tripFixture(), tripFixture()}
	var gotParams domain.PaginationParams
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			gotParams = p
			return trips, 12, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips?page=2&limit=2", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 2}, gotParams)

	var resp gen.TripList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 12, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Page)
}

func TestListTrips_200_Empty(t *testing.T) {
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return []domain.Trip{}, 0, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// data must be a JSON array, not null.
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListTrips_400_BadPage(t *testing.T) {
	svc := &mockTripServicer{}

	req := httptest.NewRequest(http.MethodGet, "/api/trips?page=abc", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /api/trips/{id} ---------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp gen.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.Id)
	require.NotNil(t, resp.CurrentCoordinates)
	assert.InDelta(t, -119.8138, resp.CurrentCoordinates.Lng, 1e-9)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp gen.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestGetTrip_400_InvalidUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/trips/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(&mockTripServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
