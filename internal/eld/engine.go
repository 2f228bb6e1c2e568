// Package eld derives a driver's daily duty-status log from the two legs of a
// trip. It is the server-side half of the time-log endpoint; the dashboard
// never reproduces this computation.
package eld

import (
	"math"

	"github.com/pkordes/eld-logbook/internal/domain"
)

// Defaults for the hours-of-service day used by Engine.
const (
	DefaultDutyStartHour = 6 // driver comes on duty at 06:00
	DefaultHandlingHours = 1 // one hour on duty for loading and again for unloading
)

// Engine assigns hour-of-day slots to duty statuses.
// The zero value is not usable; construct with New.
type Engine struct {
	dutyStart int
	handling  int
}

// New returns an Engine using the default duty start and handling time.
func New() *Engine {
	return &Engine{dutyStart: DefaultDutyStartHour, handling: DefaultHandlingHours}
}

// Stops names the pickup and dropoff locations for the remarks section.
type Stops struct {
	Pickup  string
	Dropoff string
}

// Generate lays out a single day:
//
//	[0, start)                 off duty
//	[start, pickup)            driving, leg 1
//	[pickup, pickup+h)         on duty, loading
//	[pickup+h, dropoff)        driving, leg 2
//	[dropoff, dropoff+h)       on duty, unloading
//	[dropoff+h, 24)            off duty
//
// Leg hours are whole hours (seconds / 3600, truncated). Slots past hour 23
// are dropped, so a long haul fills the day with driving and never produces
// an index outside the sheet.
func (e *Engine) Generate(req domain.TimeLogRequest, stops Stops) domain.DutyStatusLog {
	log := domain.DutyStatusLog{
		OffDuty: []int{},
		Sleeper: []int{},
		Driving: []int{},
		OnDuty:  []int{},
	}

	leg1 := wholeHours(req.Route1Duration)
	leg2 := wholeHours(req.Route2Duration)

	pickup := e.dutyStart + leg1
	loaded := pickup + e.handling
	dropoff := loaded + leg2
	unloaded := dropoff + e.handling

	log.OffDuty = fill(log.OffDuty, 0, e.dutyStart)
	log.Driving = fill(log.Driving, e.dutyStart, pickup)
	log.OnDuty = fill(log.OnDuty, pickup, loaded)
	log.Driving = fill(log.Driving, loaded, dropoff)
	log.OnDuty = fill(log.OnDuty, dropoff, unloaded)
	log.OffDuty = fill(log.OffDuty, unloaded, domain.HoursPerDay)

	log.Remarks = appendRemark(log.Remarks, "Loading", stops.Pickup, pickup, loaded)
	log.Remarks = appendRemark(log.Remarks, "Unloading", stops.Dropoff, dropoff, unloaded)

	return log
}

// wholeHours truncates seconds to whole hours, saturating at one day so the
// arithmetic above cannot overflow on absurd inputs.
func wholeHours(seconds float64) int {
	h := math.Floor(seconds / 3600)
	if h < 0 || math.IsNaN(h) {
		return 0
	}
	if h > domain.HoursPerDay {
		return domain.HoursPerDay
	}
	return int(h)
}

// fill appends every hour in [from, to) that lies on the sheet.
func fill(dst []int, from, to int) []int {
	if to > domain.HoursPerDay {
		to = domain.HoursPerDay
	}
	for h := max(from, 0); h < to; h++ {
		dst = append(dst, h)
	}
	return dst
}

func appendRemark(dst []domain.Remark, label, location string, from, to int) []domain.Remark {
	if from >= domain.HoursPerDay {
		return dst
	}
	return append(dst, domain.Remark{
		Label:    label,
		Location: location,
		FromHour: from,
		ToHour:   min(to, domain.HoursPerDay),
	})
}
