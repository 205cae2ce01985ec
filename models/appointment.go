package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusSuggested AppointmentStatus = "suggested"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// Appointment links one patient and one dentist for one service. EndTime is
// always StartTime plus the service duration, computed at booking time.
// Appointments are never deleted; cancellation is a status. Status is only
// ever mutated through scheduler.Transition.
type Appointment struct {
	gorm.Model
	PatientID          uint              `json:"patient_id" gorm:"index"`
	Patient            User              `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DentistID          uint              `json:"dentist_id" gorm:"index"`
	Dentist            User              `json:"dentist,omitempty" gorm:"foreignKey:DentistID"`
	ServiceID          uint              `json:"service_id"`
	Service            DentalService     `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	StartTime          time.Time         `json:"start_time" gorm:"index"`
	EndTime            time.Time         `json:"end_time"`
	Status             AppointmentStatus `json:"status"`
	Cost               float64           `json:"cost"`
	Notes              string            `json:"notes"`
	TreatmentNotes     string            `json:"treatment_notes"`
	CancellationReason string            `json:"cancellation_reason"`
	IsPaid             bool              `json:"is_paid" gorm:"default:false"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}
