package scheduler

import (
	"time"

	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/models"
)

// Actor is the role attempting a lifecycle transition.
type Actor string

const (
	ActorPatient Actor = "patient"
	ActorDentist Actor = "dentist"
	ActorAdmin   Actor = "admin"
)

// PatientCancellationNotice is the minimum notice a patient must give to
// cancel. Dentists are deliberately not held to it.
const PatientCancellationNotice = 24 * time.Hour

type transitionRule struct {
	actors []Actor
	// check returns a human-readable reason when the transition is blocked
	// by a timing or input precondition, or "" to allow it.
	check func(a *models.Appointment, actor Actor, reason string, now time.Time) string
}

var (
	clinicSide = []Actor{ActorDentist, ActorAdmin}
	anyParty   = []Actor{ActorPatient, ActorDentist, ActorAdmin}
)

// requireReason blocks any move into cancelled without a cancellation reason.
func requireReason(a *models.Appointment, actor Actor, reason string, now time.Time) string {
	if reason == "" {
		return "a cancellation reason is required"
	}
	return ""
}

// cancellationNotice enforces the 24-hour patient notice on top of the
// reason requirement.
func cancellationNotice(a *models.Appointment, actor Actor, reason string, now time.Time) string {
	if blocked := requireReason(a, actor, reason, now); blocked != "" {
		return blocked
	}
	if actor == ActorPatient && now.Add(PatientCancellationNotice).After(a.StartTime) {
		return "patients cannot cancel within 24 hours of the appointment"
	}
	return ""
}

// transitionTable is the single source of truth for the appointment
// lifecycle. Any (from, to, actor) triple it does not list is illegal.
// Terminal states have no entries at all.
var transitionTable = map[models.AppointmentStatus]map[models.AppointmentStatus]transitionRule{
	models.StatusPending: {
		models.StatusConfirmed: {actors: clinicSide},
		models.StatusSuggested: {actors: clinicSide},
		models.StatusCancelled: {actors: anyParty, check: cancellationNotice},
	},
	models.StatusSuggested: {
		// Accepting or declining a suggestion resolves it; there is no
		// path back to pending.
		models.StatusConfirmed: {actors: []Actor{ActorPatient}},
		models.StatusCancelled: {actors: anyParty, check: requireReason},
	},
	models.StatusConfirmed: {
		models.StatusCompleted: {actors: clinicSide},
		models.StatusCancelled: {actors: anyParty, check: cancellationNotice},
		models.StatusNoShow:    {actors: clinicSide},
	},
}

// CanTransition checks the lifecycle table without touching storage. It is
// the only place transition legality is decided.
func CanTransition(a *models.Appointment, target models.AppointmentStatus, actor Actor, reason string, now time.Time) error {
	rule, ok := transitionTable[a.Status][target]
	if !ok {
		return &IllegalTransitionError{From: a.Status, To: target, Actor: actor}
	}

	allowed := false
	for _, permitted := range rule.actors {
		if permitted == actor {
			allowed = true
			break
		}
	}
	if !allowed {
		return &IllegalTransitionError{From: a.Status, To: target, Actor: actor, Reason: "role not permitted"}
	}

	if rule.check != nil {
		if blocked := rule.check(a, actor, reason, now); blocked != "" {
			return &IllegalTransitionError{From: a.Status, To: target, Actor: actor, Reason: blocked}
		}
	}
	return nil
}

// Transition moves an appointment to the target status on behalf of an
// actor. The status update is a compare-and-set on the current status, so a
// transition that races another one fails instead of silently overwriting
// it.
func Transition(appointmentID uint, target models.AppointmentStatus, actor Actor, reason string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return nil, &DependencyMissingError{Resource: "appointment", ID: appointmentID}
	}

	// A suggestion carries a new start time that has to be re-validated
	// against working hours and existing appointments; SuggestTime is the
	// only path that does that.
	if target == models.StatusSuggested {
		return nil, &IllegalTransitionError{
			From: appointment.Status, To: target, Actor: actor,
			Reason: "suggesting requires a new start time",
		}
	}

	if err := CanTransition(&appointment, target, actor, reason, time.Now()); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": target}
	if target == models.StatusCancelled {
		updates["cancellation_reason"] = reason
	}

	result := db.DB.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, appointment.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost a concurrent update; report against the fresh status.
		raceReason := "appointment was updated concurrently"
		if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
			raceReason = "appointment was updated concurrently; current status unknown"
		}
		return nil, &IllegalTransitionError{
			From: appointment.Status, To: target, Actor: actor,
			Reason: raceReason,
		}
	}

	if err := db.DB.Preload("Patient").Preload("Dentist").Preload("Service").
		First(&appointment, appointmentID).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}
