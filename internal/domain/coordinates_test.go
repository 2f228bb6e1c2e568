package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/eld-logbook/internal/domain"
)

func TestCoordinates_Validate(t *testing.T) {
	valid := []domain.Coordinates{
		{Lat: 0, Lng: 0},
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
		{Lat: 37.7749, Lng: -122.4194},
	}
	for _, c := range valid {
		assert.NoError(t, c.Validate(), "%+v", c)
	}

	invalid := []domain.Coordinates{
		{Lat: 90.1, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 180.5},
		{Lat: 0, Lng: -181},
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.Inf(-1)},
	}
	for _, c := range invalid {
		assert.ErrorIs(t, c.Validate(), domain.ErrValidation, "%+v", c)
	}
}

func TestCoordinatesFromLngLat(t *testing.T) {
	c, ok := domain.CoordinatesFromLngLat([]float64{-121.4944, 38.5816})
	assert.True(t, ok)
	assert.Equal(t, domain.Coordinates{Lat: 38.5816, Lng: -121.4944}, c)

	c, ok = domain.CoordinatesFromLngLat([]float64{-121.4944, 38.5816, 12})
	assert.True(t, ok, "extra elements are ignored")
	assert.Equal(t, 38.5816, c.Lat)
}

func TestCoordinatesFromLngLat_ShortFallsBack(t *testing.T) {
	for _, pair := range [][]float64{nil, {}, {-121.4944}} {
		c, ok := domain.CoordinatesFromLngLat(pair)
		assert.False(t, ok)
		assert.Equal(t, domain.Coordinates{Lat: 37.7749, Lng: -122.4194}, c)
	}
}

func TestCoordinates_LngLatRoundTrip(t *testing.T) {
	in := domain.Coordinates{Lat: 39.5296, Lng: -119.8138}
	assert.Equal(t, []float64{-119.8138, 39.5296}, in.LngLat())

	out, ok := domain.CoordinatesFromLngLat(in.LngLat())
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestCoordinates_OrFallback(t *testing.T) {
	var missing *domain.Coordinates
	c, ok := missing.OrFallback()
	assert.False(t, ok)
	assert.Equal(t, domain.FallbackCoordinates, c)

	present := &domain.Coordinates{Lat: 1, Lng: 2}
	c, ok = present.OrFallback()
	assert.True(t, ok)
	assert.Equal(t, *present, c)
}
