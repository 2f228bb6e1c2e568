// Package handler implements the HTTP handlers for the ELD Logbook API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into domain-specific files (health.go, trip.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/eld-logbook/internal/domain"
)

// TripServicer defines the business operations the trip handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

// DriverServicer defines the driver lookups the driver handler depends on.
type DriverServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)
}

// TimeLogServicer defines the duty-status operations the time-log handlers
// depend on.
type TimeLogServicer interface {
	Generate(ctx context.Context, tripID uuid.UUID, req domain.TimeLogRequest) (domain.DutyStatusLog, error)
	Get(ctx context.Context, tripID uuid.UUID) (domain.DutyStatusLog, error)
}

// Pinger reports whether a backing store is reachable. *pgxpool.Pool
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server implements gen.StrictServerInterface for all API endpoints.
// Wire it in main.go via gen.NewStrictHandlerWithOptions(server, nil, ...).
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips    TripServicer
	drivers  DriverServicer
	timeLogs TimeLogServicer
	db       Pinger
}

// NewServer constructs the Server with all its dependencies.
// Pass nil for any servicer a test does not exercise.
func NewServer(trips TripServicer, drivers DriverServicer, timeLogs TimeLogServicer) *Server {
	return &Server{trips: trips, drivers: drivers, timeLogs: timeLogs}
}

// WithPinger makes GET /healthz fail with 503 while db is unreachable.
func (s *Server) WithPinger(db Pinger) *Server {
	s.db = db
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler(db Pinger) *Server {
	return NewServer(nil, nil, nil).WithPinger(db)
}
