package patient

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smileline/dental-clinic-app/controllers"
	"github.com/smileline/dental-clinic-app/cron"
	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/models"
	"github.com/smileline/dental-clinic-app/redis"
	"github.com/smileline/dental-clinic-app/scheduler"
	"github.com/smileline/dental-clinic-app/utils"
)

var notifier cron.Notifier = cron.EmailNotifier{}

// GetMyAppointments returns the logged-in patient's appointments
func GetMyAppointments(c *fiber.Ctx) error {
	patientID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var appointments []models.Appointment
	if err := db.DB.Preload("Service").Preload("Dentist").
		Where("patient_id = ?", patientID).
		Order("start_time desc").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// BookAppointment books a slot for the logged-in patient. The engine rejects
// requests outside working hours, inside blocked spans, or conflicting with
// an existing appointment; the caller is expected to re-query slots and
// resubmit.
func BookAppointment(c *fiber.Ctx) error {
	patientID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input struct {
		DentistID uint   `json:"dentist_id"`
		ServiceID uint   `json:"service_id"`
		StartTime string `json:"start_time"` // RFC3339
		Notes     string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	startTime, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid start time format. Please use RFC3339 format.",
		})
	}

	appointment, err := scheduler.BookAppointment(scheduler.BookingRequest{
		PatientID: patientID,
		DentistID: input.DentistID,
		ServiceID: input.ServiceID,
		StartTime: utils.AtClinic(startTime),
		Notes:     input.Notes,
	})
	if err != nil {
		return c.Status(controllers.SchedulerErrorStatus(err)).JSON(utils.ErrorResponse{
			Message: "Failed to book appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateSlots(appointment.DentistID, appointment.StartTime.Format("2006-01-02"))

	// Booking confirmations are best-effort; the appointment stands even if
	// a mail bounces.
	if err := notifier.Notify(appointment.PatientID, appointment, models.ReminderBookingCreated); err != nil {
		log.Printf("Failed to send booking confirmation for appointment %d: %v", appointment.ID, err)
	}
	if err := notifier.Notify(appointment.DentistID, appointment, models.ReminderBookingCreated); err != nil {
		log.Printf("Failed to notify dentist about appointment %d: %v", appointment.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// CancelAppointment cancels the logged-in patient's appointment. Within 24
// hours of the start time the engine refuses.
func CancelAppointment(c *fiber.Ctx) error {
	patientID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment ID",
		})
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.PatientID != patientID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only cancel your own appointments",
		})
	}

	updated, err := scheduler.Transition(uint(appointmentID), models.StatusCancelled, scheduler.ActorPatient, input.Reason)
	if err != nil {
		return c.Status(controllers.SchedulerErrorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	redis.InvalidateSlots(updated.DentistID, updated.StartTime.Format("2006-01-02"))

	return c.JSON(fiber.Map{
		"message":     "Appointment cancelled",
		"appointment": updated,
	})
}

// RespondToSuggestion accepts or declines a time the dentist suggested.
// Accepting confirms the appointment at the suggested time; declining
// cancels it. There is no way back to pending.
func RespondToSuggestion(c *fiber.Ctx) error {
	patientID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment ID",
		})
	}

	var input struct {
		Accept bool   `json:"accept"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.PatientID != patientID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only respond to your own appointments",
		})
	}

	target := models.StatusConfirmed
	reason := ""
	if !input.Accept {
		target = models.StatusCancelled
		reason = input.Reason
		if reason == "" {
			reason = "patient declined the suggested time"
		}
	}

	updated, err := scheduler.Transition(uint(appointmentID), target, scheduler.ActorPatient, reason)
	if err != nil {
		return c.Status(controllers.SchedulerErrorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	redis.InvalidateSlots(updated.DentistID, updated.StartTime.Format("2006-01-02"))

	return c.JSON(fiber.Map{
		"message":     "Response recorded",
		"appointment": updated,
	})
}
