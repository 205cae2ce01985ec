package dentist

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

// actorFromRole maps the authenticated role onto a lifecycle actor.
func actorFromRole(role string) scheduler.Actor {
	if role == models.RoleAdmin {
		return scheduler.ActorAdmin
	}
	return scheduler.ActorDentist
}

// dentistContext pulls the authenticated dentist (or admin) out of locals.
func dentistContext(c *fiber.Ctx) (uint, string, bool) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return 0, "", false
	}
	role, ok := c.Locals("role").(string)
	if !ok {
		return 0, "", false
	}
	return userID, role, true
}

// GetUpcomingAppointments returns upcoming appointments for the logged-in
// dentist, optionally filtered to today, tomorrow, a week or a month out.
func GetUpcomingAppointments(c *fiber.Ctx) error {
	userID, _, ok := dentistContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	limit := 10
	if c.Query("limit") != "" {
		if parsedLimit := c.QueryInt("limit"); parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	now := time.Now()
	startDate := now
	endDate := now.AddDate(0, 1, 0)

	dateFilter := c.Query("filter", "month")
	switch dateFilter {
	case "today":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = startDate.Add(24 * time.Hour)
	case "tomorrow":
		tomorrow := now.AddDate(0, 0, 1)
		startDate = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
		endDate = startDate.Add(24 * time.Hour)
	case "week":
		endDate = now.AddDate(0, 0, 7)
	}

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Service").
		Preload("Patient").
		Where("dentist_id = ?", userID).
		Where("start_time >= ? AND start_time < ?", startDate, endDate).
		Where("status IN ?", []models.AppointmentStatus{
			models.StatusPending, models.StatusSuggested, models.StatusConfirmed,
		}).
		Order("start_time asc").
		Limit(limit).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
		"filter":       dateFilter,
	})
}

// GetAppointmentHistory returns past appointments for the logged-in dentist
func GetAppointmentHistory(c *fiber.Ctx) error {
	userID, _, ok := dentistContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	page := 1
	limit := 10
	if c.Query("page") != "" {
		if parsedPage := c.QueryInt("page"); parsedPage > 0 {
			page = parsedPage
		}
	}
	if c.Query("limit") != "" {
		if parsedLimit := c.QueryInt("limit"); parsedLimit > 0 {
			limit = parsedLimit
		}
	}
	offset := (page - 1) * limit

	statuses := []models.AppointmentStatus{
		models.StatusCompleted, models.StatusCancelled, models.StatusNoShow,
	}
	if status := c.Query("status"); status != "" {
		statuses = []models.AppointmentStatus{models.AppointmentStatus(status)}
	}

	var total int64
	db.DB.Model(&models.Appointment{}).
		Where("dentist_id = ? AND status IN ?", userID, statuses).
		Count(&total)

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Service").
		Preload("Patient").
		Where("dentist_id = ? AND status IN ?", userID, statuses).
		Order("end_time desc").
		Offset(offset).
		Limit(limit).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
		"pages":        (total + int64(limit) - 1) / int64(limit),
	})
}

// UpdateAppointmentStatus moves an appointment through the lifecycle on the
// dentist's behalf: confirm, complete, cancel, or mark as no-show. All
// status changes go through the engine's transition table.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	userID, role, ok := dentistContext(c)
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
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.DentistID != userID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own appointments",
		})
	}

	updated, err := scheduler.Transition(uint(appointmentID),
		models.AppointmentStatus(input.Status), actorFromRole(role), input.Reason)
	if err != nil {
		return c.Status(controllers.SchedulerErrorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if updated.Status == models.StatusCancelled {
		redis.InvalidateSlots(updated.DentistID, updated.StartTime.Format("2006-01-02"))
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment status updated successfully",
		"appointment": updated,
	})
}

// SuggestNewTime proposes a different start time for a pending appointment.
// The new time is validated against working hours, blocked dates and
// existing appointments before the status flips to suggested, and the
// patient is notified so they can accept or decline.
func SuggestNewTime(c *fiber.Ctx) error {
	userID, role, ok := dentistContext(c)
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
		StartTime string `json:"start_time"` // RFC3339
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	startTime, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid start time format. Please use RFC3339 format.",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.DentistID != userID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only reschedule your own appointments",
		})
	}
	oldDate := appointment.StartTime.Format("2006-01-02")

	updated, err := scheduler.SuggestTime(uint(appointmentID), utils.AtClinic(startTime), actorFromRole(role))
	if err != nil {
		return c.Status(controllers.SchedulerErrorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	redis.InvalidateSlots(updated.DentistID, oldDate)
	redis.InvalidateSlots(updated.DentistID, updated.StartTime.Format("2006-01-02"))

	if err := notifier.Notify(updated.PatientID, updated, models.ReminderTimeSuggested); err != nil {
		log.Printf("Failed to notify patient about suggested time for appointment %d: %v", updated.ID, err)
	}

	return c.JSON(fiber.Map{
		"message":     "New time suggested",
		"appointment": updated,
	})
}

// UpdateTreatment edits treatment notes and the payment flag in place.
// These edits never touch the status.
func UpdateTreatment(c *fiber.Ctx) error {
	userID, role, ok := dentistContext(c)
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
		TreatmentNotes *string `json:"treatment_notes"`
		IsPaid         *bool   `json:"is_paid"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.DentistID != userID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own appointments",
		})
	}

	updates := map[string]interface{}{}
	if input.TreatmentNotes != nil {
		updates["treatment_notes"] = *input.TreatmentNotes
	}
	if input.IsPaid != nil {
		updates["is_paid"] = *input.IsPaid
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nothing to update",
		})
	}

	if err := db.DB.Model(&appointment).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update appointment",
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment updated",
		"appointment": appointment,
	})
}
