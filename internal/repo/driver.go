package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/eld-logbook/internal/domain"
)

// DriverRepo defines the persistence operations for Drivers.
type DriverRepo interface {
	// Create inserts a driver profile. It exists for test fixtures: deployed
	// drivers come from the seed migration and the API exposes them read-only.
	Create(ctx context.Context, d domain.Driver) (domain.Driver, error)

	// GetByID retrieves a driver by UUID.
	// Returns domain.ErrNotFound if no driver with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)
}

// pgDriverRepo is the Postgres implementation of DriverRepo.
type pgDriverRepo struct {
	db db
}

// NewDriverRepo constructs a DriverRepo backed by the provided db connection.
func NewDriverRepo(db db) DriverRepo {
	return &pgDriverRepo{db: db}
}

const driverColumns = `
	id, first_name, last_name, email, phone_number, driver_number,
	license_number, trailer_number, carrier, main_office_address,
	home_terminal_address, created_at`

// Create is only called from fixtures; see DriverRepo.
func (r *pgDriverRepo) Create(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	q := `
		INSERT INTO drivers (
			first_name, last_name, email, phone_number, driver_number,
			license_number, trailer_number, carrier, main_office_address,
			home_terminal_address)
		VALUES (
			@first_name, @last_name, @email, @phone_number, @driver_number,
			@license_number, @trailer_number, @carrier, @main_office_address,
			@home_terminal_address)
		RETURNING` + driverColumns

	args := pgx.NamedArgs{
		"first_name":            d.FirstName,
		"last_name":             d.LastName,
		"email":                 d.Email,
		"phone_number":          d.PhoneNumber,
		"driver_number":         d.DriverNumber,
		"license_number":        d.LicenseNumber,
		"trailer_number":        d.TrailerNumber,
		"carrier":               d.Carrier,
		"main_office_address":   d.MainOfficeAddress,
		"home_terminal_address": d.HomeTerminalAddress,
	}

	result, err := scanDriver(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	q := `SELECT` + driverColumns + `
		FROM drivers
		WHERE id = @id`

	result, err := scanDriver(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByID: %w", err)
	}
	return result, nil
}

func scanDriver(s scanner) (domain.Driver, error) {
	var (
		d  domain.Driver
		id pgtype.UUID
	)
	err := s.Scan(
		&id, &d.FirstName, &d.LastName, &d.Email, &d.PhoneNumber, &d.DriverNumber,
		&d.LicenseNumber, &d.TrailerNumber, &d.Carrier, &d.MainOfficeAddress,
		&d.HomeTerminalAddress, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Driver{}, domain.ErrNotFound
		}
		return domain.Driver{}, err
	}
	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
