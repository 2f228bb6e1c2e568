package geocode_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/geocode"
	"github.com/pkordes/eld-logbook/internal/platform/httpx"
)

func newClient(t *testing.T, h http.HandlerFunc) *geocode.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := geocode.New(geocode.Config{Key: "k", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := geocode.New(geocode.Config{})
	assert.Error(t, err)
}

func TestGeocode_OK(t *testing.T) {
	var gotAddress, gotKey, gotPath string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAddress = r.URL.Query().Get("address")
		gotKey = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":38.5816,"lng":-121.4944}}}]}`))
	})

	got, err := c.Geocode(context.Background(), "  Sacramento,\n   CA ")

	require.NoError(t, err)
	assert.Equal(t, "/geocode/json", gotPath)
	assert.Equal(t, "Sacramento, CA", gotAddress, "whitespace is collapsed")
	assert.Equal(t, "k", gotKey)
	assert.Equal(t, domain.Coordinates{Lat: 38.5816, Lng: -121.4944}, got)
}

func TestGeocode_ZeroResults(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	_, err := c.Geocode(context.Background(), "nowhere at all")

	assert.ErrorIs(t, err, geocode.ErrNoMatch)
}

func TestGeocode_DeniedStatus(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`))
	})

	_, err := c.Geocode(context.Background(), "Reno, NV")

	assert.ErrorIs(t, err, geocode.ErrNoMatch)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestGeocode_StatusError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Geocode(context.Background(), "Reno, NV")

	var se *httpx.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
}

func TestGeocode_BlankAddress(t *testing.T) {
	called := false
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.Geocode(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called, "no request is made for a blank address")
}
