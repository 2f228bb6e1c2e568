// Package logsheet lays out a driver's daily log: the 24-hour duty-status
// grid with per-row totals and the header fields of the paper form.
// Render is pure; the dashboard templates only print what it returns.
package logsheet

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/units"
)

// rowLabels are the printed names of the four grid rows, in row order.
var rowLabels = map[domain.DutyStatus]string{
	domain.StatusOffDuty: "Off Duty",
	domain.StatusSleeper: "Sleeper Berth",
	domain.StatusDriving: "Driving",
	domain.StatusOnDuty:  "On Duty (Not Driving)",
}

// Meta is the trip context printed around the grid.
type Meta struct {
	Trip   domain.Trip
	Driver domain.Driver
	Route  domain.Route
}

// Row is one duty status across the day.
type Row struct {
	Number int // 1-based line number on the form
	Status domain.DutyStatus
	Label  string
	Cells  [domain.HoursPerDay]bool
	Total  int
}

// Sheet is a fully laid-out daily log.
type Sheet struct {
	Date                   time.Time
	Day, Month, Year       string
	From, To               string
	TotalMilesDrivingToday string
	TotalMileageToday      string
	Carrier                string
	MainOfficeAddress      string
	HomeTerminalAddress    string
	TruckNumbers           string
	HourLabels             [domain.HoursPerDay]string
	Rows                   []Row
	Remarks                []string
	OnDutyHoursToday       int
}

// Render builds the sheet for log. Indices outside 0–23 are ignored and
// duplicates count once, so no row total exceeds 24.
func Render(log domain.DutyStatusLog, meta Meta) Sheet {
	s := Sheet{
		Date:                   meta.Trip.CreatedAt,
		From:                   meta.Trip.CurrentLocation,
		To:                     meta.Trip.DropoffLocation,
		TotalMilesDrivingToday: units.RoundMiles(meta.Route.DistanceMeters()),
		TotalMileageToday:      units.RoundMiles(meta.Route.DistanceMeters()),
		Carrier:                meta.Driver.Carrier,
		MainOfficeAddress:      meta.Driver.MainOfficeAddress,
		HomeTerminalAddress:    meta.Driver.HomeTerminalAddress,
		TruckNumbers:           meta.Driver.LicenseNumber + " / " + meta.Driver.TrailerNumber,
		Rows:                   make([]Row, 0, len(domain.DutyStatuses)),
	}
	if !s.Date.IsZero() {
		s.Day = strconv.Itoa(s.Date.Day())
		s.Month = strconv.Itoa(int(s.Date.Month()))
		s.Year = strconv.Itoa(s.Date.Year())
	}

	for h := range s.HourLabels {
		s.HourLabels[h] = HourLabel(h)
	}

	for i, status := range domain.DutyStatuses {
		row := Row{Number: i + 1, Status: status, Label: rowLabels[status]}
		for _, h := range log.Hours(status) {
			if h < 0 || h >= domain.HoursPerDay || row.Cells[h] {
				continue
			}
			row.Cells[h] = true
			row.Total++
		}
		if status == domain.StatusDriving || status == domain.StatusOnDuty {
			s.OnDutyHoursToday += row.Total
		}
		s.Rows = append(s.Rows, row)
	}

	for _, r := range log.Remarks {
		s.Remarks = append(s.Remarks, FormatRemark(r))
	}
	return s
}

// HourLabel is the grid header for hour h: "Midnight", "1".."11", "Noon",
// "1".."11".
func HourLabel(h int) string {
	switch {
	case h == 0:
		return "Midnight"
	case h == 12:
		return "Noon"
	case h < 12:
		return strconv.Itoa(h)
	}
	return strconv.Itoa(h - 12)
}

// FormatRemark renders a remark the way it is written on the paper form,
// e.g. "Loading, at Sacramento, CA, (From 8AM to 9AM)".
func FormatRemark(r domain.Remark) string {
	if r.Location == "" {
		return fmt.Sprintf("%s, (From %s to %s)", r.Label, clock(r.FromHour), clock(r.ToHour))
	}
	return fmt.Sprintf("%s, at %s, (From %s to %s)", r.Label, r.Location, clock(r.FromHour), clock(r.ToHour))
}

// clock formats an hour of day on a 12-hour clock; 24 wraps to midnight.
func clock(h int) string {
	h %= domain.HoursPerDay
	switch {
	case h == 0:
		return "12AM"
	case h == 12:
		return "12PM"
	case h < 12:
		return strconv.Itoa(h) + "AM"
	}
	return strconv.Itoa(h-12) + "PM"
}
