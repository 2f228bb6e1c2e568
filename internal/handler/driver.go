package handler

import (
	"context"
	"errors"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/handler/gen"
)

// GetDriver handles GET /api/drivers/{id}.
func (s *Server) GetDriver(ctx context.Context, req gen.GetDriverRequestObject) (gen.GetDriverResponseObject, error) {
	d, err := s.drivers.GetByID(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetDriver404JSONResponse(notFoundBody("driver not found")), nil
		}
		return nil, err
	}

	return gen.GetDriver200JSONResponse(driverToResponse(d)), nil
}

// driverToResponse converts a domain.Driver into the generated gen.Driver type.
// Optional contact fields that are empty become nil (omitted in JSON).
func driverToResponse(d domain.Driver) gen.Driver {
	return gen.Driver{
		Id:                  d.ID,
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		Email:               optional(d.Email),
		PhoneNumber:         optional(d.PhoneNumber),
		DriverId:            d.DriverNumber,
		LicenseNumber:       d.LicenseNumber,
		TrailerNumber:       d.TrailerNumber,
		Carrier:             d.Carrier,
		MainOfficeAddress:   optional(d.MainOfficeAddress),
		HomeTerminalAddress: optional(d.HomeTerminalAddress),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
