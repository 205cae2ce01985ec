package scheduler

import (
	"fmt"
	"time"

	"github.com/smileline/dental-clinic-app/models"
)

// ValidationError rejects malformed or past-dated input before any
// availability check is made. Not retryable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError means the requested slot was no longer available at insert
// time, either because the client held stale slot data or because a
// concurrent booking won the race. The caller should re-fetch slots and pick
// again.
type ConflictError struct {
	DentistID uint
	Slot      TimeRange
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("dentist %d is not available from %s to %s",
		e.DentistID, e.Slot.Start.Format("15:04"), e.Slot.End.Format("15:04"))
}

// IllegalTransitionError means the requested status change is not permitted
// for the appointment's current state, the acting role, or the timing.
type IllegalTransitionError struct {
	From   models.AppointmentStatus
	To     models.AppointmentStatus
	Actor  Actor
	Reason string
}

func (e *IllegalTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot move appointment from %s to %s as %s: %s", e.From, e.To, e.Actor, e.Reason)
	}
	return fmt.Sprintf("cannot move appointment from %s to %s as %s", e.From, e.To, e.Actor)
}

// DependencyMissingError means a referenced patient, dentist or service
// record could not be resolved.
type DependencyMissingError struct {
	Resource string
	ID       uint
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// NotificationDeliveryError wraps a failed reminder send. It is only raised
// inside the reminder batch, where it is logged and absorbed.
type NotificationDeliveryError struct {
	AppointmentID uint
	RecipientID   uint
	Err           error
}

func (e *NotificationDeliveryError) Error() string {
	return fmt.Sprintf("failed to notify user %d about appointment %d: %v",
		e.RecipientID, e.AppointmentID, e.Err)
}

func (e *NotificationDeliveryError) Unwrap() error { return e.Err }

func pastDateError(t time.Time) *ValidationError {
	return &ValidationError{Field: "start_time", Reason: fmt.Sprintf("%s is in the past", t.Format(time.RFC3339))}
}
