package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/handler"
	"github.com/pkordes/eld-logbook/internal/handler/gen"
)

type mockDriverServicer struct {
	getByID func(ctx context.Context, id uuid.UUID) (domain.Driver, error)
}

func (m *mockDriverServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return m.getByID(ctx, id)
}

var _ handler.DriverServicer = (*mockDriverServicer)(nil)

func newDriverHTTPHandler(svc handler.DriverServicer) http.Handler {
	return gen.Handler(gen.NewStrictHandler(handler.NewServer(nil, svc, nil), nil))
}

// ---- GET /api/drivers/{id} -------------------------------------------------

func TestGetDriver_200(t *testing.T) {
	id := uuid.New()
	svc := &mockDriverServicer{
		getByID: func(_ context.Context, got uuid.UUID) (domain.Driver, error) {
			return domain.Driver{
				ID:            got,
				FirstName:     "John",
				LastName:      "Driver",
				DriverNumber:  "D-123456",
				LicenseNumber: "ABC-1234",
				TrailerNumber: "TRL-5678",
				Carrier:       "National Freight Services Inc.",
				Email:         "john@example.com",
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/drivers/"+id.String(), nil)
	rec := httptest.NewRecorder()

	newDriverHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp gen.Driver
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, id, resp.Id)
	assert.Equal(t, "D-123456", resp.DriverId)
	require.NotNil(t, resp.Email)
	assert.Equal(t, "john@example.com", *resp.Email)
	assert.Nil(t, resp.PhoneNumber, "empty optional fields are omitted")
}

func TestGetDriver_404(t *testing.T) {
	svc := &mockDriverServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Driver, error) {
			return domain.Driver{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/drivers/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newDriverHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
