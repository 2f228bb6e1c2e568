// Package domain contains the core data types for the ELD Logbook application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, pipeline, web).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxCycleHours is the 70 hour / 8 day on-duty cycle limit.
const MaxCycleHours = 70

// Trip is a single haul: from the driver's current location to a pickup and
// on to a dropoff. Trips are immutable once created.
//
// Each location carries optional coordinates; nil means the address was never
// geocoded (or the record predates geocoding).
type Trip struct {
	ID                 uuid.UUID
	DriverID           uuid.UUID
	CurrentLocation    string
	PickupLocation     string
	DropoffLocation    string
	CurrentCoordinates *Coordinates
	PickupCoordinates  *Coordinates
	DropoffCoordinates *Coordinates
	CycleHoursUsed     float64
	CreatedAt          time.Time
}
