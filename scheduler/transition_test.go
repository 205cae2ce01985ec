package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smileline/dental-clinic-app/models"
)

var allStatuses = []models.AppointmentStatus{
	models.StatusPending,
	models.StatusSuggested,
	models.StatusConfirmed,
	models.StatusCompleted,
	models.StatusCancelled,
	models.StatusNoShow,
}

var allActors = []Actor{ActorPatient, ActorDentist, ActorAdmin}

// allowedTriples enumerates every legal (from, to, actor) combination. The
// completeness sweep below asserts that everything else is rejected.
var allowedTriples = map[string]bool{
	"pending>confirmed>dentist":   true,
	"pending>confirmed>admin":     true,
	"pending>suggested>dentist":   true,
	"pending>suggested>admin":     true,
	"pending>cancelled>patient":   true,
	"pending>cancelled>dentist":   true,
	"pending>cancelled>admin":     true,
	"suggested>confirmed>patient": true,
	"suggested>cancelled>patient": true,
	"suggested>cancelled>dentist": true,
	"suggested>cancelled>admin":   true,
	"confirmed>completed>dentist": true,
	"confirmed>completed>admin":   true,
	"confirmed>cancelled>patient": true,
	"confirmed>cancelled>dentist": true,
	"confirmed>cancelled>admin":   true,
	"confirmed>no_show>dentist":   true,
	"confirmed>no_show>admin":     true,
}

// futureAppointment is far enough out that no timing precondition interferes.
func futureAppointment(status models.AppointmentStatus) *models.Appointment {
	start := time.Now().Add(100 * time.Hour)
	return &models.Appointment{
		PatientID: 1,
		DentistID: 2,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    status,
	}
}

func TestTransitionTableCompleteness(t *testing.T) {
	now := time.Now()
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			for _, actor := range allActors {
				key := fmt.Sprintf("%s>%s>%s", from, to, actor)
				t.Run(key, func(t *testing.T) {
					err := CanTransition(futureAppointment(from), to, actor, "patient request", now)
					if allowedTriples[key] {
						assert.NoError(t, err)
					} else {
						var illegal *IllegalTransitionError
						require.ErrorAs(t, err, &illegal)
						assert.Equal(t, from, illegal.From)
						assert.Equal(t, to, illegal.To)
					}
				})
			}
		}
	}
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	now := time.Now()
	for _, from := range []models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled, models.StatusNoShow} {
		assert.True(t, from.IsTerminal())
		for _, to := range allStatuses {
			for _, actor := range allActors {
				err := CanTransition(futureAppointment(from), to, actor, "reason", now)
				assert.Error(t, err, "%s -> %s as %s must be rejected", from, to, actor)
			}
		}
	}
}

func TestPatientCancellationNotice(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		status    models.AppointmentStatus
		startsIn  time.Duration
		actor     Actor
		wantError bool
	}{
		{"patient cancelling 20h before start is blocked", models.StatusConfirmed, 20 * time.Hour, ActorPatient, true},
		{"patient cancelling 30h before start succeeds", models.StatusConfirmed, 30 * time.Hour, ActorPatient, false},
		{"same restriction applies while pending", models.StatusPending, 20 * time.Hour, ActorPatient, true},
		{"dentist may cancel inside the window", models.StatusConfirmed, 20 * time.Hour, ActorDentist, false},
		{"admin may cancel inside the window", models.StatusConfirmed, 2 * time.Hour, ActorAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointment := futureAppointment(tt.status)
			appointment.StartTime = now.Add(tt.startsIn)
			appointment.EndTime = appointment.StartTime.Add(30 * time.Minute)

			err := CanTransition(appointment, models.StatusCancelled, tt.actor, "schedule clash", now)
			if tt.wantError {
				var illegal *IllegalTransitionError
				require.ErrorAs(t, err, &illegal)
				assert.Contains(t, illegal.Reason, "24 hours")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCancellationRequiresReason(t *testing.T) {
	now := time.Now()
	for _, from := range []models.AppointmentStatus{models.StatusPending, models.StatusSuggested, models.StatusConfirmed} {
		err := CanTransition(futureAppointment(from), models.StatusCancelled, ActorDentist, "", now)
		var illegal *IllegalTransitionError
		require.ErrorAs(t, err, &illegal, "cancelling from %s without a reason", from)
		assert.Contains(t, illegal.Reason, "reason")
	}
}

func TestSuggestionResolvesOnlyForward(t *testing.T) {
	now := time.Now()

	// The patient accepts or declines; nothing goes back to pending.
	assert.NoError(t, CanTransition(futureAppointment(models.StatusSuggested), models.StatusConfirmed, ActorPatient, "", now))
	assert.Error(t, CanTransition(futureAppointment(models.StatusSuggested), models.StatusPending, ActorPatient, "", now))
	assert.Error(t, CanTransition(futureAppointment(models.StatusSuggested), models.StatusPending, ActorDentist, "", now))

	// Only the patient confirms a suggestion.
	assert.Error(t, CanTransition(futureAppointment(models.StatusSuggested), models.StatusConfirmed, ActorDentist, "", now))
}
