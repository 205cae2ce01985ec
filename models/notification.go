package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReminderUpcomingAppointment = "upcoming_appointment"
	ReminderBookingCreated      = "booking_created"
	ReminderTimeSuggested       = "time_suggested"
)

// Notification records one delivered message to one recipient about one
// appointment.
type Notification struct {
	ID            string         `json:"id" gorm:"type:uuid;primaryKey"`
	RecipientID   uint           `json:"recipient_id" gorm:"index"`
	Recipient     User           `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	AppointmentID uint           `json:"appointment_id" gorm:"index"`
	Kind          string         `json:"kind"`
	SentAt        time.Time      `json:"sent_at"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
