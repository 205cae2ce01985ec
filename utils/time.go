package utils

import (
	"os"
	"time"
)

// ClinicLocation returns the clinic's timezone from CLINIC_TIMEZONE,
// defaulting to UTC. All schedules and reminder windows are interpreted in
// this location.
func ClinicLocation() *time.Location {
	name := os.Getenv("CLINIC_TIMEZONE")
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AtClinic converts a time into the clinic's timezone.
func AtClinic(t time.Time) time.Time {
	return t.In(ClinicLocation())
}
