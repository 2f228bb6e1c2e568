package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/handler/gen"
)

// csvHeaders defines the column names written as the first row of a CSV log.
// One row follows per hour of the day; status columns hold "X" when active.
var csvHeaders = []string{"hour", "off_duty", "sleeper", "driving", "on_duty", "remarks"}

// CreateTimeLog handles POST /api/trips/{id}/time-log.
// It derives the day's duty-status log from the two leg measurements and
// stores it as the trip's current log.
func (s *Server) CreateTimeLog(ctx context.Context, req gen.CreateTimeLogRequestObject) (gen.CreateTimeLogResponseObject, error) {
	if req.Body == nil {
		return gen.CreateTimeLog422JSONResponse(requestBody("request body is required")), nil
	}

	log, err := s.timeLogs.Generate(ctx, req.Id, domain.TimeLogRequest{
		Route1Duration: req.Body.Route1Duration,
		Route1Distance: req.Body.Route1Distance,
		Route2Duration: req.Body.Route2Duration,
		Route2Distance: req.Body.Route2Distance,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreateTimeLog422JSONResponse(validationBody(err)), nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			return gen.CreateTimeLog404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	return gen.CreateTimeLog200JSONResponse(timeLogToResponse(log)), nil
}

// GetTimeLog handles GET /api/trips/{id}/time-log.
// Use ?format=csv to receive an hour-by-hour CSV grid; default is JSON.
func (s *Server) GetTimeLog(ctx context.Context, req gen.GetTimeLogRequestObject) (gen.GetTimeLogResponseObject, error) {
	log, err := s.timeLogs.Get(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetTimeLog404JSONResponse(notFoundBody("time log not found")), nil
		}
		return nil, err
	}

	if req.Params.Format != nil && *req.Params.Format == gen.Csv {
		return buildCSVResponse(log), nil
	}
	return gen.GetTimeLog200JSONResponse(timeLogToResponse(log)), nil
}

// timeLogToResponse converts a domain.DutyStatusLog into the generated type.
// Every slice is non-nil so the JSON always carries arrays, never null.
func timeLogToResponse(l domain.DutyStatusLog) gen.TimeLog {
	resp := gen.TimeLog{
		TripId:  l.TripID,
		OffDuty: nonNil(l.OffDuty),
		Sleeper: nonNil(l.Sleeper),
		Driving: nonNil(l.Driving),
		OnDuty:  nonNil(l.OnDuty),
		Remarks: make([]gen.Remark, 0, len(l.Remarks)),
	}
	for _, r := range l.Remarks {
		resp.Remarks = append(resp.Remarks, gen.Remark{
			Label:    r.Label,
			Location: optional(r.Location),
			FromHour: r.FromHour,
			ToHour:   r.ToHour,
		})
	}
	if !l.CreatedAt.IsZero() {
		created := l.CreatedAt
		resp.CreatedAt = &created
	}
	return resp
}

// buildCSVResponse encodes the log as a 24-row grid and wraps it in the
// streaming response type. Remarks starting in an hour are joined with "|".
func buildCSVResponse(l domain.DutyStatusLog) gen.GetTimeLog200TextcsvResponse {
	var active [domain.HoursPerDay][]bool
	for h := range active {
		active[h] = make([]bool, len(domain.DutyStatuses))
	}
	for col, status := range domain.DutyStatuses {
		for _, h := range l.Hours(status) {
			if h >= 0 && h < domain.HoursPerDay {
				active[h][col] = true
			}
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for h := 0; h < domain.HoursPerDay; h++ {
		record := []string{strconv.Itoa(h)}
		for _, on := range active[h] {
			if on {
				record = append(record, "X")
			} else {
				record = append(record, "")
			}
		}
		record = append(record, remarksAt(l.Remarks, h))
		//nolint:errcheck
		w.Write(record)
	}
	w.Flush()

	return gen.GetTimeLog200TextcsvResponse{
		Body:          &buf,
		ContentLength: int64(buf.Len()),
	}
}

func remarksAt(remarks []domain.Remark, hour int) string {
	var out []string
	for _, r := range remarks {
		if r.FromHour != hour {
			continue
		}
		if r.Location != "" {
			out = append(out, r.Label+" ("+r.Location+")")
		} else {
			out = append(out, r.Label)
		}
	}
	return strings.Join(out, "|")
}

func nonNil(hours []int) []int {
	if hours == nil {
		return []int{}
	}
	return hours
}
