package scheduler

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/models"
)

// BookingRequest carries everything needed to create an appointment. The end
// time is never client-supplied; it is derived from the service duration.
type BookingRequest struct {
	PatientID uint      `json:"patient_id"`
	DentistID uint      `json:"dentist_id"`
	ServiceID uint      `json:"service_id"`
	StartTime time.Time `json:"start_time"`
	Notes     string    `json:"notes"`
}

// BookAppointment validates a booking request, resolves its dependencies,
// checks the slot against working hours and existing appointments, and
// inserts the appointment in pending status. The availability re-check and
// the insert run in one serializable transaction, so of two concurrent
// requests for overlapping intervals exactly one commits and the other gets
// a ConflictError, whether it saw the winner's row or lost the serialization
// race on a previously free slot.
//
// A request outside business hours or inside a blocked span is rejected, not
// adjusted.
func BookAppointment(req BookingRequest) (*models.Appointment, error) {
	if req.PatientID == 0 {
		return nil, &ValidationError{Field: "patient_id", Reason: "is required"}
	}
	if req.DentistID == 0 {
		return nil, &ValidationError{Field: "dentist_id", Reason: "is required"}
	}
	if req.ServiceID == 0 {
		return nil, &ValidationError{Field: "service_id", Reason: "is required"}
	}
	if req.StartTime.IsZero() {
		return nil, &ValidationError{Field: "start_time", Reason: "is required"}
	}
	if req.StartTime.Before(time.Now()) {
		return nil, pastDateError(req.StartTime)
	}

	var patient models.User
	if err := db.DB.First(&patient, req.PatientID).Error; err != nil {
		return nil, &DependencyMissingError{Resource: "patient", ID: req.PatientID}
	}
	var dentist models.User
	if err := db.DB.Preload("Role").First(&dentist, req.DentistID).Error; err != nil {
		return nil, &DependencyMissingError{Resource: "dentist", ID: req.DentistID}
	}
	if !dentist.IsDentist() {
		return nil, &ValidationError{Field: "dentist_id", Reason: "user is not a dentist"}
	}
	var service models.DentalService
	if err := db.DB.First(&service, req.ServiceID).Error; err != nil {
		return nil, &DependencyMissingError{Resource: "service", ID: req.ServiceID}
	}
	if !service.IsActive {
		return nil, &ValidationError{Field: "service_id", Reason: "service is no longer offered"}
	}

	duration := service.Duration.ToDuration()
	if duration <= 0 {
		return nil, &ValidationError{Field: "service_id", Reason: "service has no duration"}
	}
	candidate := TimeRange{Start: req.StartTime, End: req.StartTime.Add(duration)}

	open, err := ResolveAvailability(req.DentistID, req.StartTime)
	if err != nil {
		return nil, err
	}
	if !withinOpenIntervals(open, candidate) {
		return nil, &ValidationError{
			Field:  "start_time",
			Reason: "requested time is outside the dentist's working hours or within a blocked period",
		}
	}

	appointment := models.Appointment{
		PatientID: req.PatientID,
		DentistID: req.DentistID,
		ServiceID: req.ServiceID,
		StartTime: candidate.Start,
		EndTime:   candidate.End,
		Status:    models.StatusPending,
		Cost:      service.Price,
		Notes:     req.Notes,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		available, err := CheckAvailability(tx, req.DentistID, candidate)
		if err != nil {
			return err
		}
		if !available {
			return &ConflictError{DentistID: req.DentistID, Slot: candidate}
		}
		return tx.Create(&appointment).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		if isSerializationFailure(err) {
			return nil, &ConflictError{DentistID: req.DentistID, Slot: candidate}
		}
		return nil, err
	}

	appointment.Patient = patient
	appointment.Dentist = dentist
	appointment.Service = service
	return &appointment, nil
}

// SuggestTime moves a pending appointment to suggested with a new start time
// proposed by the clinic. The new time goes through the same working-hours
// and conflict validation as a fresh booking, minus the appointment's own
// row.
func SuggestTime(appointmentID uint, newStart time.Time, actor Actor) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := db.DB.Preload("Service").First(&appointment, appointmentID).Error; err != nil {
		return nil, &DependencyMissingError{Resource: "appointment", ID: appointmentID}
	}

	if err := CanTransition(&appointment, models.StatusSuggested, actor, "", time.Now()); err != nil {
		return nil, err
	}
	if newStart.IsZero() {
		return nil, &ValidationError{Field: "start_time", Reason: "is required"}
	}
	if newStart.Before(time.Now()) {
		return nil, pastDateError(newStart)
	}

	duration := appointment.Service.Duration.ToDuration()
	candidate := TimeRange{Start: newStart, End: newStart.Add(duration)}

	open, err := ResolveAvailability(appointment.DentistID, newStart)
	if err != nil {
		return nil, err
	}
	if !withinOpenIntervals(open, candidate) {
		return nil, &ValidationError{
			Field:  "start_time",
			Reason: "suggested time is outside the dentist's working hours or within a blocked period",
		}
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		available, err := checkConflicts(tx, appointment.DentistID, candidate, appointment.ID)
		if err != nil {
			return err
		}
		if !available {
			return &ConflictError{DentistID: appointment.DentistID, Slot: candidate}
		}

		result := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", appointment.ID, appointment.Status).
			Updates(map[string]interface{}{
				"status":     models.StatusSuggested,
				"start_time": candidate.Start,
				"end_time":   candidate.End,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &IllegalTransitionError{
				From: appointment.Status, To: models.StatusSuggested, Actor: actor,
				Reason: "appointment was updated concurrently",
			}
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		if isSerializationFailure(err) {
			return nil, &ConflictError{DentistID: appointment.DentistID, Slot: candidate}
		}
		return nil, err
	}

	if err := db.DB.Preload("Patient").Preload("Dentist").Preload("Service").
		First(&appointment, appointmentID).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}
