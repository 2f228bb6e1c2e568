// Package tripsapi is the dashboard's client for the backend trips API.
// It speaks the same wire types the API server is generated from and maps
// error responses back onto the domain sentinels.
package tripsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/handler/gen"
	"github.com/pkordes/eld-logbook/internal/platform/httpx"
	"github.com/pkordes/eld-logbook/internal/platform/obs"
)

// Client calls the backend API. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

// New returns a Client rooted at baseURL (e.g. "http://localhost:8080").
// A nil httpClient gets a 10 second timeout; a nil logger uses slog.Default().
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, errors.New("trips api base url is empty")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{http: httpClient, baseURL: baseURL, logger: logger}, nil
}

// ListTrips returns one page of trips, newest first, and the total count.
func (c *Client) ListTrips(ctx context.Context, p domain.PaginationParams) (_ []domain.Trip, _ int, err error) {
	defer obs.Time(ctx, c.logger, "tripsapi.ListTrips")(&err)

	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))

	var out gen.TripList
	if err := c.call(ctx, http.MethodGet, "/api/trips?"+q.Encode(), nil, &out); err != nil {
		return nil, 0, fmt.Errorf("tripsapi.Client.ListTrips: %w", err)
	}

	trips := make([]domain.Trip, len(out.Data))
	for i, t := range out.Data {
		trips[i] = tripFromWire(t)
	}
	return trips, out.Pagination.Total, nil
}

// GetTrip fetches a trip. Returns domain.ErrNotFound for an unknown id.
func (c *Client) GetTrip(ctx context.Context, id uuid.UUID) (_ domain.Trip, err error) {
	defer obs.Time(ctx, c.logger, "tripsapi.GetTrip")(&err)

	var out gen.Trip
	if err := c.call(ctx, http.MethodGet, "/api/trips/"+id.String(), nil, &out); err != nil {
		return domain.Trip{}, fmt.Errorf("tripsapi.Client.GetTrip: %w", err)
	}
	return tripFromWire(out), nil
}

// CreateTrip submits a new trip. Returns domain.ErrValidation when the API
// rejects the input.
func (c *Client) CreateTrip(ctx context.Context, trip domain.Trip) (_ domain.Trip, err error) {
	defer obs.Time(ctx, c.logger, "tripsapi.CreateTrip")(&err)

	body := gen.CreateTripRequest{
		Driver:             trip.DriverID,
		CurrentLocation:    trip.CurrentLocation,
		PickupLocation:     trip.PickupLocation,
		DropoffLocation:    trip.DropoffLocation,
		CurrentCoordinates: coordsToWire(trip.CurrentCoordinates),
		PickupCoordinates:  coordsToWire(trip.PickupCoordinates),
		DropoffCoordinates: coordsToWire(trip.DropoffCoordinates),
		CurrentCycleUsed:   trip.CycleHoursUsed,
	}

	var out gen.Trip
	if err := c.call(ctx, http.MethodPost, "/api/trips", body, &out); err != nil {
		return domain.Trip{}, fmt.Errorf("tripsapi.Client.CreateTrip: %w", err)
	}
	return tripFromWire(out), nil
}

// GetDriver fetches a driver profile. Returns domain.ErrNotFound for an
// unknown id.
func (c *Client) GetDriver(ctx context.Context, id uuid.UUID) (_ domain.Driver, err error) {
	defer obs.Time(ctx, c.logger, "tripsapi.GetDriver")(&err)

	var out gen.Driver
	if err := c.call(ctx, http.MethodGet, "/api/drivers/"+id.String(), nil, &out); err != nil {
		return domain.Driver{}, fmt.Errorf("tripsapi.Client.GetDriver: %w", err)
	}
	return domain.Driver{
		ID:                  out.Id,
		FirstName:           out.FirstName,
		LastName:            out.LastName,
		Email:               deref(out.Email),
		PhoneNumber:         deref(out.PhoneNumber),
		DriverNumber:        out.DriverId,
		LicenseNumber:       out.LicenseNumber,
		TrailerNumber:       out.TrailerNumber,
		Carrier:             out.Carrier,
		MainOfficeAddress:   deref(out.MainOfficeAddress),
		HomeTerminalAddress: deref(out.HomeTerminalAddress),
	}, nil
}

// CreateTimeLog asks the API to derive the trip's duty-status log from the
// two leg measurements.
func (c *Client) CreateTimeLog(ctx context.Context, tripID uuid.UUID, req domain.TimeLogRequest) (_ domain.DutyStatusLog, err error) {
	defer obs.Time(ctx, c.logger, "tripsapi.CreateTimeLog")(&err)

	body := gen.TimeLogRequest{
		Route1Duration: req.Route1Duration,
		Route1Distance: req.Route1Distance,
		Route2Duration: req.Route2Duration,
		Route2Distance: req.Route2Distance,
	}

	var out gen.TimeLog
	if err := c.call(ctx, http.MethodPost, "/api/trips/"+tripID.String()+"/time-log", body, &out); err != nil {
		return domain.DutyStatusLog{}, fmt.Errorf("tripsapi.Client.CreateTimeLog: %w", err)
	}

	log := domain.DutyStatusLog{
		TripID:  out.TripId,
		OffDuty: out.OffDuty,
		Sleeper: out.Sleeper,
		Driving: out.Driving,
		OnDuty:  out.OnDuty,
	}
	for _, r := range out.Remarks {
		log.Remarks = append(log.Remarks, domain.Remark{
			Label:    r.Label,
			Location: deref(r.Location),
			FromHour: r.FromHour,
			ToHour:   r.ToHour,
		})
	}
	if out.CreatedAt != nil {
		log.CreatedAt = *out.CreatedAt
	}
	return log, nil
}

// call performs one JSON round trip and translates API error bodies.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	req, err := httpx.NewRequest(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	return translate(httpx.DoJSON(c.http, req, out))
}

// translate maps 404 and 422 responses onto domain.ErrNotFound and
// domain.ErrValidation, keeping the API's message. Other errors pass through.
func translate(err error) error {
	var se *httpx.StatusError
	if !errors.As(err, &se) {
		return err
	}

	msg := se.Body
	var body gen.ErrorResponse
	if json.Unmarshal([]byte(se.Body), &body) == nil && body.Error.Message != "" {
		msg = body.Error.Message
	}

	switch se.Code {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}
	return err
}

func tripFromWire(t gen.Trip) domain.Trip {
	return domain.Trip{
		ID:                 t.Id,
		DriverID:           t.Driver,
		CurrentLocation:    t.CurrentLocation,
		PickupLocation:     t.PickupLocation,
		DropoffLocation:    t.DropoffLocation,
		CurrentCoordinates: coordsFromWire(t.CurrentCoordinates),
		PickupCoordinates:  coordsFromWire(t.PickupCoordinates),
		DropoffCoordinates: coordsFromWire(t.DropoffCoordinates),
		CycleHoursUsed:     t.CurrentCycleUsed,
		CreatedAt:          t.CreatedAt,
	}
}

func coordsFromWire(c *gen.Coordinates) *domain.Coordinates {
	if c == nil {
		return nil
	}
	return &domain.Coordinates{Lat: c.Lat, Lng: c.Lng}
}

func coordsToWire(c *domain.Coordinates) *gen.Coordinates {
	if c == nil {
		return nil
	}
	return &gen.Coordinates{Lat: c.Lat, Lng: c.Lng}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
