package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/eld-logbook/internal/domain"
)

// TimeLogRepo stores the most recent derived duty-status log per trip.
type TimeLogRepo interface {
	// Upsert stores log for log.TripID, replacing any previous log.
	Upsert(ctx context.Context, log domain.DutyStatusLog) (domain.DutyStatusLog, error)

	// GetByTripID returns the stored log for a trip.
	// Returns domain.ErrNotFound if none has been generated yet.
	GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.DutyStatusLog, error)
}

type pgTimeLogRepo struct {
	db db
}

// NewTimeLogRepo constructs a TimeLogRepo backed by the provided db connection.
func NewTimeLogRepo(db db) TimeLogRepo {
	return &pgTimeLogRepo{db: db}
}

// remarkRow is the JSONB shape of a domain.Remark.
type remarkRow struct {
	Label    string `json:"label"`
	Location string `json:"location,omitempty"`
	FromHour int    `json:"from_hour"`
	ToHour   int    `json:"to_hour"`
}

func (r *pgTimeLogRepo) Upsert(ctx context.Context, log domain.DutyStatusLog) (domain.DutyStatusLog, error) {
	const q = `
		INSERT INTO time_logs (trip_id, off_duty, sleeper, driving, on_duty, remarks)
		VALUES (@trip_id, @off_duty, @sleeper, @driving, @on_duty, @remarks)
		ON CONFLICT (trip_id) DO UPDATE
		SET off_duty   = EXCLUDED.off_duty,
		    sleeper    = EXCLUDED.sleeper,
		    driving    = EXCLUDED.driving,
		    on_duty    = EXCLUDED.on_duty,
		    remarks    = EXCLUDED.remarks,
		    created_at = now()
		RETURNING trip_id, off_duty, sleeper, driving, on_duty, remarks, created_at`

	remarks := make([]remarkRow, len(log.Remarks))
	for i, rm := range log.Remarks {
		remarks[i] = remarkRow{Label: rm.Label, Location: rm.Location, FromHour: rm.FromHour, ToHour: rm.ToHour}
	}
	remarksJSON, err := json.Marshal(remarks)
	if err != nil {
		return domain.DutyStatusLog{}, fmt.Errorf("repo.TimeLogRepo.Upsert: encode remarks: %w", err)
	}

	args := pgx.NamedArgs{
		"trip_id":  log.TripID,
		"off_duty": toInt32s(log.OffDuty),
		"sleeper":  toInt32s(log.Sleeper),
		"driving":  toInt32s(log.Driving),
		"on_duty":  toInt32s(log.OnDuty),
		"remarks":  string(remarksJSON),
	}

	result, err := scanTimeLog(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DutyStatusLog{}, fmt.Errorf("repo.TimeLogRepo.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgTimeLogRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.DutyStatusLog, error) {
	const q = `
		SELECT trip_id, off_duty, sleeper, driving, on_duty, remarks, created_at
		FROM time_logs
		WHERE trip_id = @trip_id`

	result, err := scanTimeLog(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}))
	if err != nil {
		return domain.DutyStatusLog{}, fmt.Errorf("repo.TimeLogRepo.GetByTripID: %w", err)
	}
	return result, nil
}

func scanTimeLog(s scanner) (domain.DutyStatusLog, error) {
	var (
		l                                 domain.DutyStatusLog
		offDuty, sleeper, driving, onDuty []int32
		remarksJSON                       []byte
		tripID                            pgtype.UUID
	)
	err := s.Scan(&tripID, &offDuty, &sleeper, &driving, &onDuty, &remarksJSON, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DutyStatusLog{}, domain.ErrNotFound
		}
		return domain.DutyStatusLog{}, err
	}

	l.TripID = uuid.UUID(tripID.Bytes)
	l.OffDuty = fromInt32s(offDuty)
	l.Sleeper = fromInt32s(sleeper)
	l.Driving = fromInt32s(driving)
	l.OnDuty = fromInt32s(onDuty)

	var remarks []remarkRow
	if err := json.Unmarshal(remarksJSON, &remarks); err != nil {
		return domain.DutyStatusLog{}, fmt.Errorf("decode remarks: %w", err)
	}
	for _, rm := range remarks {
		l.Remarks = append(l.Remarks, domain.Remark{Label: rm.Label, Location: rm.Location, FromHour: rm.FromHour, ToHour: rm.ToHour})
	}
	return l, nil
}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func fromInt32s(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
