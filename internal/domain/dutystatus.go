package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// HoursPerDay is the number of hour slots on a daily log sheet.
const HoursPerDay = 24

// DutyStatus is one of the four rows of a driver's daily log.
type DutyStatus string

const (
	StatusOffDuty DutyStatus = "offDuty"
	StatusSleeper DutyStatus = "sleeper"
	StatusDriving DutyStatus = "driving"
	StatusOnDuty  DutyStatus = "onDuty"
)

// DutyStatuses lists the statuses in log-sheet row order.
var DutyStatuses = []DutyStatus{StatusOffDuty, StatusSleeper, StatusDriving, StatusOnDuty}

// Remark annotates a change of duty, e.g. loading at the pickup location.
// FromHour is inclusive and ToHour exclusive.
type Remark struct {
	Label    string
	Location string
	FromHour int
	ToHour   int
}

// DutyStatusLog maps each duty status to the hour-of-day indices (0–23)
// during which it was active.
type DutyStatusLog struct {
	TripID    uuid.UUID
	OffDuty   []int
	Sleeper   []int
	Driving   []int
	OnDuty    []int
	Remarks   []Remark
	CreatedAt time.Time
}

// Hours returns the indices recorded for status s.
func (l DutyStatusLog) Hours(s DutyStatus) []int {
	switch s {
	case StatusOffDuty:
		return l.OffDuty
	case StatusSleeper:
		return l.Sleeper
	case StatusDriving:
		return l.Driving
	case StatusOnDuty:
		return l.OnDuty
	}
	return nil
}

// TimeLogRequest carries the two legs' measurements to the time-log endpoint.
// Durations are in seconds, distances in meters.
type TimeLogRequest struct {
	Route1Duration float64
	Route1Distance float64
	Route2Duration float64
	Route2Distance float64
}

// TimeLogRequestFromRoute builds a request from computed route legs.
func TimeLogRequestFromRoute(r Route) TimeLogRequest {
	return TimeLogRequest{
		Route1Duration: r.ToPickup.DurationSeconds,
		Route1Distance: r.ToPickup.DistanceMeters,
		Route2Duration: r.ToDropoff.DurationSeconds,
		Route2Distance: r.ToDropoff.DistanceMeters,
	}
}

// Validate rejects negative or non-finite measurements.
func (r TimeLogRequest) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"route1_duration", r.Route1Duration},
		{"route1_distance", r.Route1Distance},
		{"route2_duration", r.Route2Duration},
		{"route2_distance", r.Route2Distance},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrValidation, f.name)
		}
	}
	return nil
}
