// Package repo contains all database access logic for the ELD Logbook API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here; only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/eld-logbook/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// Trips are immutable once created, so there is no Update or Delete.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id and created_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trips, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `
	id, driver_id, current_location, pickup_location, dropoff_location,
	current_lat, current_lng, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
	cycle_hours_used, created_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (
			driver_id, current_location, pickup_location, dropoff_location,
			current_lat, current_lng, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
			cycle_hours_used)
		VALUES (
			@driver_id, @current_location, @pickup_location, @dropoff_location,
			@current_lat, @current_lng, @pickup_lat, @pickup_lng, @dropoff_lat, @dropoff_lng,
			@cycle_hours_used)
		RETURNING` + tripColumns

	curLat, curLng := coordArgs(trip.CurrentCoordinates)
	pickLat, pickLng := coordArgs(trip.PickupCoordinates)
	dropLat, dropLng := coordArgs(trip.DropoffCoordinates)

	args := pgx.NamedArgs{
		"driver_id":        trip.DriverID,
		"current_location": trip.CurrentLocation,
		"pickup_location":  trip.PickupLocation,
		"dropoff_location": trip.DropoffLocation,
		"current_lat":      curLat, // nil becomes NULL
		"current_lng":      curLng,
		"pickup_lat":       pickLat,
		"pickup_lng":       pickLng,
		"dropoff_lat":      dropLat,
		"dropoff_lng":      dropLng,
		"cycle_hours_used": trip.CycleHoursUsed,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT` + tripColumns + `
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of trips and the total row count.
// The count comes from a window function so both arrive in one round trip.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	q := `SELECT` + tripColumns + `, COUNT(*) OVER() AS total
		FROM trips
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		trips []domain.Trip
		total int64
	)
	for rows.Next() {
		t, err := scanTripWithTotal(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	// A page past the end returns no rows and therefore no window count.
	if len(trips) == 0 && p.Page > 1 {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM trips`).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
		}
	}

	return trips, total, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	return scanTripWithTotal(s, nil)
}

// scanTripWithTotal is scanTrip for queries that append a COUNT(*) OVER()
// column. Pass total=nil when the query has no such column.
func scanTripWithTotal(s scanner, total *int64) (domain.Trip, error) {
	var (
		t                domain.Trip
		id, driverID     pgtype.UUID
		curLat, curLng   pgtype.Float8
		pickLat, pickLng pgtype.Float8
		dropLat, dropLng pgtype.Float8
	)

	dest := []any{
		&id, &driverID, &t.CurrentLocation, &t.PickupLocation, &t.DropoffLocation,
		&curLat, &curLng, &pickLat, &pickLng, &dropLat, &dropLng,
		&t.CycleHoursUsed, &t.CreatedAt,
	}
	if total != nil {
		dest = append(dest, total)
	}

	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.DriverID = uuid.UUID(driverID.Bytes)
	t.CurrentCoordinates = coordsFromColumns(curLat, curLng)
	t.PickupCoordinates = coordsFromColumns(pickLat, pickLng)
	t.DropoffCoordinates = coordsFromColumns(dropLat, dropLng)

	return t, nil
}

// coordArgs splits optional coordinates into nullable column arguments.
func coordArgs(c *domain.Coordinates) (lat, lng *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lng
}

// coordsFromColumns rebuilds optional coordinates; both columns must be set.
func coordsFromColumns(lat, lng pgtype.Float8) *domain.Coordinates {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
}
