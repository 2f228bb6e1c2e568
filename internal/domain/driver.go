package domain

import (
	"time"

	"github.com/google/uuid"
)

// Driver is the static profile shown on the profile page and copied onto
// every log sheet. Read-only as far as this system is concerned.
type Driver struct {
	ID                  uuid.UUID
	FirstName           string
	LastName            string
	Email               string
	PhoneNumber         string
	DriverNumber        string
	LicenseNumber       string
	TrailerNumber       string
	Carrier             string
	MainOfficeAddress   string
	HomeTerminalAddress string
	CreatedAt           time.Time
}

// FullName joins first and last name with a single space.
func (d Driver) FullName() string {
	switch {
	case d.FirstName == "":
		return d.LastName
	case d.LastName == "":
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}
