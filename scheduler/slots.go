package scheduler

import (
	"time"

	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/models"
)

// DefaultSlotIncrement is the step between candidate start times.
const DefaultSlotIncrement = 30 * time.Minute

// Slot is one bookable candidate start time with its conflict annotation.
type Slot struct {
	Start     time.Time `json:"start"`
	Available bool      `json:"available"`
}

// GenerateSlots walks each open interval from its start in increment steps
// and emits every start time whose full service duration still fits inside
// that interval. Pure: the same inputs always yield the same slots.
func GenerateSlots(open []TimeRange, duration, increment time.Duration) []time.Time {
	if duration <= 0 || increment <= 0 {
		return nil
	}

	var starts []time.Time
	for _, interval := range open {
		for cursor := interval.Start; !cursor.Add(duration).After(interval.End); cursor = cursor.Add(increment) {
			starts = append(starts, cursor)
		}
	}
	return starts
}

// AnnotateSlots marks each candidate start as available unless its interval
// overlaps a non-cancelled appointment.
func AnnotateSlots(starts []time.Time, duration time.Duration, appointments []models.Appointment) []Slot {
	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		candidate := TimeRange{Start: start, End: start.Add(duration)}
		slots = append(slots, Slot{
			Start:     start,
			Available: !HasOverlap(appointments, candidate),
		})
	}
	return slots
}

// ListSlots produces the annotated candidate slots for one dentist, service
// and date. For today's date, slots whose start has already passed are
// dropped. A pure read: concurrent bookings may make an "available" slot
// stale by the time it is submitted, which the booking transaction catches.
func ListSlots(dentistID, serviceID uint, date time.Time) ([]Slot, error) {
	var service models.DentalService
	if err := db.DB.First(&service, serviceID).Error; err != nil {
		return nil, &DependencyMissingError{Resource: "service", ID: serviceID}
	}

	open, err := ResolveAvailability(dentistID, date)
	if err != nil {
		return nil, err
	}

	starts := GenerateSlots(open, service.Duration.ToDuration(), DefaultSlotIncrement)

	now := time.Now().In(date.Location())
	if now.Year() == date.Year() && now.YearDay() == date.YearDay() {
		upcoming := starts[:0]
		for _, s := range starts {
			if s.After(now) {
				upcoming = append(upcoming, s)
			}
		}
		starts = upcoming
	}

	appointments, err := appointmentsOn(dentistID, date)
	if err != nil {
		return nil, err
	}

	return AnnotateSlots(starts, service.Duration.ToDuration(), appointments), nil
}

// appointmentsOn loads the dentist's non-cancelled appointments for the date.
func appointmentsOn(dentistID uint, date time.Time) ([]models.Appointment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var appointments []models.Appointment
	err := db.DB.
		Where("dentist_id = ? AND start_time >= ? AND start_time < ? AND status <> ?",
			dentistID, dayStart, dayEnd, models.StatusCancelled).
		Find(&appointments).Error
	return appointments, err
}
