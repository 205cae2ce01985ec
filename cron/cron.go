package cron

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/models"
	"github.com/smileline/dental-clinic-app/scheduler"
	"github.com/smileline/dental-clinic-app/utils"
)

// BatchResult reports one reminder run: appointments considered, reminders
// delivered, and per-appointment failures.
type BatchResult struct {
	Considered int `json:"considered"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}

// StartCronJobs starts the daily schedule that sends next-day appointment
// reminders every evening at 18:00 clinic time.
func StartCronJobs() {
	c := cron.New(cron.WithLocation(utils.ClinicLocation()))
	_, err := c.AddFunc("0 18 * * *", func() {
		result, err := RunReminderBatch()
		if err != nil {
			log.Printf("Reminder batch failed: %v", err)
			return
		}
		log.Printf("Reminder batch done: considered=%d sent=%d failed=%d",
			result.Considered, result.Sent, result.Failed)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// RunReminderBatch finds confirmed appointments starting tomorrow and sends
// each party a reminder. It is stateless between invocations, so it can be
// triggered from the cron schedule, an admin endpoint, or any worker
// process. A failure for one appointment never aborts the rest of the run.
func RunReminderBatch() (BatchResult, error) {
	appointments, err := collectDueReminders(time.Now())
	if err != nil {
		return BatchResult{}, err
	}
	return dispatchReminders(appointments, EmailNotifier{}, sendPacing())
}

// collectDueReminders selects confirmed appointments within tomorrow's
// [00:00, 24:00) clinic-local window.
func collectDueReminders(now time.Time) ([]models.Appointment, error) {
	loc := utils.ClinicLocation()
	now = now.In(loc)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Dentist").Preload("Service").
		Where("status = ? AND start_time >= ? AND start_time < ?",
			models.StatusConfirmed, tomorrow, dayAfter).
		Find(&appointments).Error
	return appointments, err
}

// dispatchReminders notifies the patient and, if present, the dentist of
// every appointment, each send attempted independently, so a bounced patient
// mail never silences the dentist's reminder. Delivery errors are wrapped,
// logged and counted per appointment; the loop always runs to the end. The
// pause between appointments is best-effort pacing against provider
// throttling, not a correctness device.
func dispatchReminders(appointments []models.Appointment, notifier Notifier, pause time.Duration) (BatchResult, error) {
	result := BatchResult{Considered: len(appointments)}

	for i, appointment := range appointments {
		if i > 0 && pause > 0 {
			time.Sleep(pause)
		}

		recipients := []uint{appointment.PatientID}
		if appointment.DentistID != 0 {
			recipients = append(recipients, appointment.DentistID)
		}

		delivered := true
		for _, recipientID := range recipients {
			if err := notifier.Notify(recipientID, &appointment, models.ReminderUpcomingAppointment); err != nil {
				deliveryErr := &scheduler.NotificationDeliveryError{
					AppointmentID: appointment.ID,
					RecipientID:   recipientID,
					Err:           err,
				}
				log.Printf("Reminder delivery failed: %v", deliveryErr)
				delivered = false
			}
		}

		if delivered {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	return result, nil
}

// sendPacing turns the REMINDER_SENDS_PER_SEC setting into a pause between
// sends. Defaults to 10 sends per second.
func sendPacing() time.Duration {
	perSecond := 10
	if raw := os.Getenv("REMINDER_SENDS_PER_SEC"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			perSecond = parsed
		}
	}
	return time.Second / time.Duration(perSecond)
}
