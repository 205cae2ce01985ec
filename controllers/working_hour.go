package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/models"
)

// GetMyWorkingHours retrieves the logged-in dentist's weekly schedule
func GetMyWorkingHours(c *fiber.Ctx) error {
	dentistID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var workingHours []models.WorkingHours
	if err := db.DB.Where("dentist_id = ?", dentistID).
		Order("day_of_week asc").
		Find(&workingHours).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get working hours",
		})
	}
	return c.JSON(workingHours)
}

// CreateWorkingHour creates a working-hour rule for the logged-in dentist
func CreateWorkingHour(c *fiber.Ctx) error {
	dentistID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	workingHour := new(models.WorkingHours)
	if err := c.BodyParser(workingHour); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	workingHour.DentistID = dentistID

	if msg := validateWorkingHour(workingHour); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
	}
	if workingHour.IsWorkDay && hasActiveRuleForDay(dentistID, workingHour.DayOfWeek, 0) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An active working-hour rule already exists for this day",
		})
	}

	if err := db.DB.Create(workingHour).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create working hour",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(workingHour)
}

// UpdateWorkingHour updates an existing working-hour rule
func UpdateWorkingHour(c *fiber.Ctx) error {
	dentistID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var workingHour models.WorkingHours
	if err := db.DB.Where("dentist_id = ?", dentistID).First(&workingHour, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Working hour not found",
		})
	}
	if err := c.BodyParser(&workingHour); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	workingHour.DentistID = dentistID

	if msg := validateWorkingHour(&workingHour); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
	}
	if workingHour.IsWorkDay && hasActiveRuleForDay(dentistID, workingHour.DayOfWeek, workingHour.ID) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An active working-hour rule already exists for this day",
		})
	}

	if err := db.DB.Save(&workingHour).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update working hour",
		})
	}
	return c.JSON(workingHour)
}

// DeleteWorkingHour deletes a working-hour rule
func DeleteWorkingHour(c *fiber.Ctx) error {
	dentistID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var workingHour models.WorkingHours
	if err := db.DB.Where("dentist_id = ?", dentistID).First(&workingHour, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Working hour not found",
		})
	}
	if err := db.DB.Delete(&workingHour).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete working hour",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// hasActiveRuleForDay reports whether another active rule already covers the
// dentist's weekday. The availability resolver assumes at most one active
// rule per (dentist, weekday).
func hasActiveRuleForDay(dentistID uint, day models.DayOfWeek, excludeID uint) bool {
	var existing models.WorkingHours
	err := db.DB.
		Where("dentist_id = ? AND day_of_week = ? AND is_work_day = ? AND id <> ?",
			dentistID, day, true, excludeID).
		First(&existing).Error
	return err == nil
}

// validateWorkingHour checks weekday range, HH:MM formats and interval
// ordering, including the optional break.
func validateWorkingHour(wh *models.WorkingHours) string {
	if wh.DayOfWeek < models.Sunday || wh.DayOfWeek > models.Saturday {
		return "day_of_week must be between 0 (Sunday) and 6 (Saturday)"
	}

	start, err := time.Parse("15:04", wh.StartTime)
	if err != nil {
		return "start_time must be in HH:MM format"
	}
	end, err := time.Parse("15:04", wh.EndTime)
	if err != nil {
		return "end_time must be in HH:MM format"
	}
	if !start.Before(end) {
		return "start_time must be before end_time"
	}

	if (wh.BreakStart == nil) != (wh.BreakEnd == nil) {
		return "break_start and break_end must be set together"
	}
	if wh.BreakStart != nil {
		breakStart, err := time.Parse("15:04", *wh.BreakStart)
		if err != nil {
			return "break_start must be in HH:MM format"
		}
		breakEnd, err := time.Parse("15:04", *wh.BreakEnd)
		if err != nil {
			return "break_end must be in HH:MM format"
		}
		if !breakStart.Before(breakEnd) {
			return "break_start must be before break_end"
		}
	}

	return ""
}
