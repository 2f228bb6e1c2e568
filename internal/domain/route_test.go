package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/eld-logbook/internal/domain"
)

var (
	reno       = domain.Coordinates{Lat: 39.5, Lng: -119.8}
	sacramento = domain.Coordinates{Lat: 38.6, Lng: -121.5}
	oakland    = domain.Coordinates{Lat: 37.8, Lng: -122.4}
)

func leg(from, to domain.Coordinates, geometry ...[2]float64) domain.RouteLeg {
	return domain.RouteLeg{From: from, To: to, Geometry: geometry}
}

func TestRoute_Contiguous(t *testing.T) {
	tests := []struct {
		name string
		r    domain.Route
		want bool
	}{
		{
			name: "legs meet at pickup",
			r: domain.Route{
				ToPickup:  leg(reno, sacramento, [2]float64{-119.8, 39.5}, [2]float64{-121.5, 38.6}),
				ToDropoff: leg(sacramento, oakland, [2]float64{-121.5, 38.6}, [2]float64{-122.4, 37.8}),
			},
			want: true,
		},
		{
			// ~100 m off the requested point, same spot for both legs
			name: "pickup snapped to road",
			r: domain.Route{
				ToPickup:  leg(reno, sacramento, [2]float64{-119.8, 39.5}, [2]float64{-121.5, 38.6009}),
				ToDropoff: leg(sacramento, oakland, [2]float64{-121.5, 38.6009}, [2]float64{-122.4, 37.8}),
			},
			want: true,
		},
		{
			name: "geometries do not meet",
			r: domain.Route{
				ToPickup:  leg(reno, sacramento, [2]float64{-119.8, 39.5}, [2]float64{10, 10}),
				ToDropoff: leg(sacramento, oakland, [2]float64{-50, -50}, [2]float64{-122.4, 37.8}),
			},
			want: false,
		},
		{
			// ~30 m apart: both near pickup but the line is broken
			name: "gap at the junction",
			r: domain.Route{
				ToPickup:  leg(reno, sacramento, [2]float64{-119.8, 39.5}, [2]float64{-121.5, 38.6}),
				ToDropoff: leg(sacramento, oakland, [2]float64{-121.5, 38.6003}, [2]float64{-122.4, 37.8}),
			},
			want: false,
		},
		{
			name: "legs meet away from pickup",
			r: domain.Route{
				ToPickup:  leg(reno, sacramento, [2]float64{-119.8, 39.5}, [2]float64{-120.5, 39.0}),
				ToDropoff: leg(sacramento, oakland, [2]float64{-120.5, 39.0}, [2]float64{-122.4, 37.8}),
			},
			want: false,
		},
		{
			name: "empty first leg",
			r: domain.Route{
				ToPickup:  leg(reno, sacramento),
				ToDropoff: leg(sacramento, oakland, [2]float64{-121.5, 38.6}, [2]float64{-122.4, 37.8}),
			},
			want: false,
		},
		{
			name: "empty second leg",
			r: domain.Route{
				ToPickup:  leg(reno, sacramento, [2]float64{-119.8, 39.5}, [2]float64{-121.5, 38.6}),
				ToDropoff: leg(sacramento, oakland),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contiguous())
		})
	}
}

func TestRoute_Totals(t *testing.T) {
	r := domain.Route{
		ToPickup:  domain.RouteLeg{DistanceMeters: 1000, DurationSeconds: 60},
		ToDropoff: domain.RouteLeg{DistanceMeters: 2500, DurationSeconds: 120},
	}
	assert.InDelta(t, 3500, r.DistanceMeters(), 1e-9)
	assert.InDelta(t, 180, r.DurationSeconds(), 1e-9)
}
