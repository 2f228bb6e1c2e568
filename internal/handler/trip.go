package handler

import (
	"context"
	"errors"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/handler/gen"
)

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(ctx context.Context, req gen.CreateTripRequestObject) (gen.CreateTripResponseObject, error) {
	trip, err := requestToTrip(req.Body)
	if err != nil {
		return gen.CreateTrip422JSONResponse(requestBody(err.Error())), nil
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreateTrip422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.CreateTrip201JSONResponse(tripToResponse(created)), nil
}

// ListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(ctx context.Context, req gen.ListTripsRequestObject) (gen.ListTripsResponseObject, error) {
	params := domain.NewPaginationParams(req.Params.Page, req.Params.Limit)
	trips, total, err := s.trips.ListPaged(ctx, params)
	if err != nil {
		return nil, err
	}

	data := make([]gen.Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	return gen.ListTrips200JSONResponse{
		Data: data,
		Pagination: gen.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	}, nil
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(ctx context.Context, req gen.GetTripRequestObject) (gen.GetTripResponseObject, error) {
	trip, err := s.trips.GetByID(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetTrip404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	return gen.GetTrip200JSONResponse(tripToResponse(trip)), nil
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a CreateTripRequest body into a domain.Trip.
// Returns an error if the body is missing.
func requestToTrip(body *gen.CreateTripRequest) (domain.Trip, error) {
	if body == nil {
		return domain.Trip{}, errors.New("request body is required")
	}
	return domain.Trip{
		DriverID:           body.Driver,
		CurrentLocation:    body.CurrentLocation,
		PickupLocation:     body.PickupLocation,
		DropoffLocation:    body.DropoffLocation,
		CurrentCoordinates: coordsFromRequest(body.CurrentCoordinates),
		PickupCoordinates:  coordsFromRequest(body.PickupCoordinates),
		DropoffCoordinates: coordsFromRequest(body.DropoffCoordinates),
		CycleHoursUsed:     body.CurrentCycleUsed,
	}, nil
}

// tripToResponse converts a domain.Trip into the generated gen.Trip type.
func tripToResponse(t domain.Trip) gen.Trip {
	return gen.Trip{
		Id:                 t.ID,
		Driver:             t.DriverID,
		CurrentLocation:    t.CurrentLocation,
		PickupLocation:     t.PickupLocation,
		DropoffLocation:    t.DropoffLocation,
		CurrentCoordinates: coordsToResponse(t.CurrentCoordinates),
		PickupCoordinates:  coordsToResponse(t.PickupCoordinates),
		DropoffCoordinates: coordsToResponse(t.DropoffCoordinates),
		CurrentCycleUsed:   t.CycleHoursUsed,
		CreatedAt:          t.CreatedAt,
	}
}

func coordsFromRequest(c *gen.Coordinates) *domain.Coordinates {
	if c == nil {
		return nil
	}
	return &domain.Coordinates{Lat: c.Lat, Lng: c.Lng}
}

func coordsToResponse(c *domain.Coordinates) *gen.Coordinates {
	if c == nil {
		return nil
	}
	return &gen.Coordinates{Lat: c.Lat, Lng: c.Lng}
}
