package scheduler

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/smileline/dental-clinic-app/models"
)

// HasOverlap reports whether any non-cancelled appointment overlaps the
// candidate interval.
func HasOverlap(appointments []models.Appointment, candidate TimeRange) bool {
	for _, appt := range appointments {
		if appt.Status == models.StatusCancelled {
			continue
		}
		if candidate.Overlaps(TimeRange{Start: appt.StartTime, End: appt.EndTime}) {
			return true
		}
	}
	return false
}

// CheckAvailability decides whether the dentist is free for the candidate
// interval against persisted appointments. FOR UPDATE locks any conflicting
// rows, and the booking transaction runs serializable, which also covers the
// empty-result case: when two transactions both read no conflict for
// overlapping intervals, the later commit fails with a serialization failure
// instead of double-booking.
//
// Overlap is the single half-open predicate start < e AND end > s; touching
// endpoints do not conflict.
func CheckAvailability(tx *gorm.DB, dentistID uint, candidate TimeRange) (bool, error) {
	return checkConflicts(tx, dentistID, candidate, 0)
}

// checkConflicts is CheckAvailability with one appointment excluded, used
// when re-validating a new time for an existing appointment.
func checkConflicts(tx *gorm.DB, dentistID uint, candidate TimeRange, excludeID uint) (bool, error) {
	var conflicting models.Appointment
	err := tx.Raw(`
		SELECT *
		FROM appointments
		WHERE dentist_id = ?
		  AND id <> ?
		  AND status <> ?
		  AND start_time < ?
		  AND end_time > ?
		  AND deleted_at IS NULL
		FOR UPDATE
		LIMIT 1
	`, dentistID, excludeID, models.StatusCancelled, candidate.End, candidate.Start).
		Scan(&conflicting).Error
	if err != nil {
		return false, err
	}

	return conflicting.ID == 0, nil
}

// serializationFailure is the SQLSTATE Postgres reports when a serializable
// transaction must be retried because a concurrent one committed first.
const serializationFailure = "40001"

// isSerializationFailure reports whether err is a Postgres serialization
// failure. The booking path maps it to a ConflictError so the losing request
// is told to pick another slot.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == serializationFailure
}
