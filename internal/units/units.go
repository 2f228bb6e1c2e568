// Package units formats route distances and durations for display.
package units

import (
	"fmt"
	"math"
	"strconv"
)

// MetersPerMile is the statute mile used for all mileage figures.
const MetersPerMile = 1609.34

// KM formats meters as kilometres with two decimals, e.g. 12345 → "12.35".
func KM(meters float64) string {
	return strconv.FormatFloat(meters/1000, 'f', 2, 64)
}

// Miles converts meters to statute miles.
func Miles(meters float64) float64 {
	return meters / MetersPerMile
}

// RoundMiles formats meters as a whole number of miles, e.g. 160934 → "100".
func RoundMiles(meters float64) string {
	return strconv.FormatFloat(Miles(meters), 'f', 0, 64)
}

// HoursAndMinutes formats a duration in seconds as "Xh Ym", or "Ym" when it
// is under an hour. Seconds are truncated; negative or non-finite input is
// treated as zero.
func HoursAndMinutes(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
