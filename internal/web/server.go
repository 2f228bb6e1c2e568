// Package web serves the driver dashboard: server-rendered pages for the
// trip list, trip details with a route map, the add-trip form, the driver
// profile and the daily log sheet.
//
// Pages never call the database. Every read and write goes through the
// backend trips API, and route legs come from the directions service on each
// page load.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/pipeline"
)

// TripsClient is the subset of the trips API client the pages use directly.
type TripsClient interface {
	ListTrips(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error)
	CreateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetDriver(ctx context.Context, id uuid.UUID) (domain.Driver, error)
}

// Geocoder resolves a free-text address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// TripPipeline loads a trip with its route, or with route and duty-status
// log for the log sheet.
type TripPipeline interface {
	Route(ctx context.Context, tripID uuid.UUID) (pipeline.View, error)
	Build(ctx context.Context, tripID uuid.UUID) (pipeline.View, error)
}

// Config wires a Server.
type Config struct {
	Trips    TripsClient
	Geocoder Geocoder
	Pipeline TripPipeline
	// DriverID is the driver whose profile is shown and who owns new trips.
	DriverID uuid.UUID
	// MapboxToken is handed to the in-page map widget.
	MapboxToken string
	Logger      *slog.Logger
}

// Server renders the dashboard pages.
type Server struct {
	trips       TripsClient
	geocoder    Geocoder
	pipeline    TripPipeline
	driverID    uuid.UUID
	mapboxToken string
	logger      *slog.Logger
	pages       map[string]*template.Template
}

// NewServer parses the page templates and returns a ready Server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Trips == nil || cfg.Geocoder == nil || cfg.Pipeline == nil {
		return nil, errors.New("web.NewServer: trips, geocoder and pipeline are required")
	}
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("web.NewServer: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		trips:       cfg.Trips,
		geocoder:    cfg.Geocoder,
		pipeline:    cfg.Pipeline,
		driverID:    cfg.DriverID,
		mapboxToken: cfg.MapboxToken,
		logger:      logger,
		pages:       pages,
	}, nil
}

// Register mounts the dashboard routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/trips", http.StatusFound)
	})
	r.Get("/healthz", s.health)
	r.Get("/trips", s.listTrips)
	r.Get("/trip/{id}", s.showTrip)
	r.Get("/trip/{id}/map.json", s.tripMap)
	r.Get("/add-trip", s.addTripForm)
	r.Post("/add-trip", s.addTrip)
	r.Get("/profile", s.profile)
	r.Get("/log-sheets/{id}", s.logSheet)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "Page not found")
	})
}

// Handler returns a bare router with the dashboard routes, for tests and for
// mounting under other routers.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// tripID parses the {id} URL parameter, rendering a 404 page when it is not
// a UUID.
func (s *Server) tripID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := parseID(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Trip not found")
		return uuid.Nil, false
	}
	return id, true
}

// loadFailed renders the page for a pipeline error that prevented loading the
// trip: 404 for an unknown trip, 502 otherwise.
func (s *Server) loadFailed(w http.ResponseWriter, r *http.Request, id uuid.UUID, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		s.renderError(w, r, http.StatusNotFound, "Trip not found")
		return
	}
	s.logger.ErrorContext(r.Context(), "load trip", "trip_id", id, "error", err)
	s.renderError(w, r, http.StatusBadGateway, "Failed to load trip")
}

func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
