package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/models"
	"github.com/smileline/dental-clinic-app/redis"
)

// GetMyBlockedDates lists the logged-in dentist's blocked dates
func GetMyBlockedDates(c *fiber.Ctx) error {
	dentistID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var blockedDates []models.BlockedDate
	if err := db.DB.Where("dentist_id = ?", dentistID).
		Order("date asc").
		Find(&blockedDates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get blocked dates",
		})
	}
	return c.JSON(blockedDates)
}

// CreateBlockedDate blocks a date, or part of one, for the logged-in dentist
func CreateBlockedDate(c *fiber.Ctx) error {
	dentistID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input struct {
		Date      string  `json:"date"` // "YYYY-MM-DD"
		FullDay   bool    `json:"full_day"`
		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`
		Reason    string  `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, use YYYY-MM-DD",
		})
	}

	if !input.FullDay {
		if input.StartTime == nil || input.EndTime == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Partial blocks require start_time and end_time",
			})
		}
		start, err := time.Parse("15:04", *input.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_time must be in HH:MM format",
			})
		}
		end, err := time.Parse("15:04", *input.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "end_time must be in HH:MM format",
			})
		}
		if !start.Before(end) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_time must be before end_time",
			})
		}
	}

	blockedDate := models.BlockedDate{
		DentistID: dentistID,
		Date:      date,
		FullDay:   input.FullDay,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Reason:    input.Reason,
	}
	if err := db.DB.Create(&blockedDate).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create blocked date",
		})
	}

	redis.InvalidateSlots(dentistID, input.Date)

	return c.Status(fiber.StatusCreated).JSON(blockedDate)
}

// DeleteBlockedDate removes a blocked date
func DeleteBlockedDate(c *fiber.Ctx) error {
	dentistID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var blockedDate models.BlockedDate
	if err := db.DB.Where("dentist_id = ?", dentistID).First(&blockedDate, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Blocked date not found",
		})
	}
	if err := db.DB.Delete(&blockedDate).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete blocked date",
		})
	}

	redis.InvalidateSlots(dentistID, blockedDate.Date.Format("2006-01-02"))

	return c.SendStatus(fiber.StatusNoContent)
}
