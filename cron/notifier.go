package cron

import (
	"fmt"
	"time"

	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/models"
	"github.com/smileline/dental-clinic-app/utils"
)

// Notifier delivers one message to one recipient about one appointment.
// The reminder batch and the booking controllers both go through it.
type Notifier interface {
	Notify(recipientID uint, appointment *models.Appointment, kind string) error
}

// EmailNotifier sends over SMTP and records a Notification row for each
// successful delivery.
type EmailNotifier struct{}

func (EmailNotifier) Notify(recipientID uint, appointment *models.Appointment, kind string) error {
	var recipient models.User
	if err := db.DB.First(&recipient, recipientID).Error; err != nil {
		return fmt.Errorf("recipient %d not found: %w", recipientID, err)
	}

	subject, body := reminderEmail(&recipient, appointment, kind)
	if err := utils.SendEmail(recipient.Email, subject, body); err != nil {
		return err
	}

	notification := models.Notification{
		RecipientID:   recipientID,
		AppointmentID: appointment.ID,
		Kind:          kind,
		SentAt:        time.Now(),
	}
	return db.DB.Create(&notification).Error
}

func reminderEmail(recipient *models.User, appointment *models.Appointment, kind string) (subject, body string) {
	switch kind {
	case models.ReminderBookingCreated:
		subject = "Appointment Request Received"
	case models.ReminderTimeSuggested:
		subject = "New Time Suggested for Your Appointment"
	default:
		subject = fmt.Sprintf("Reminder: Upcoming Appointment - %s", appointment.Service.Name)
	}

	body = fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a notification about your dental appointment.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Dentist:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Dental Clinic Team</p>
	`, recipient.Name, appointment.Service.Name, appointment.Dentist.Name,
		appointment.StartTime.Format("2006-01-02 15:04"),
		appointment.EndTime.Format("2006-01-02 15:04"),
		appointment.Status)
	return subject, body
}
