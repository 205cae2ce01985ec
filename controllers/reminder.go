package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smileline/dental-clinic-app/cron"
	"github.com/smileline/dental-clinic-app/utils"
)

// RunReminderBatch triggers one reminder run manually. The cron schedule
// calls the same function; both are safe to run from any process.
func RunReminderBatch(c *fiber.Ctx) error {
	result, err := cron.RunReminderBatch()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Reminder batch failed",
			Error:   err.Error(),
		})
	}
	return c.JSON(result)
}
