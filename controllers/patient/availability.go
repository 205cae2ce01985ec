package patient

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smileline/dental-clinic-app/controllers"
	"github.com/smileline/dental-clinic-app/redis"
	"github.com/smileline/dental-clinic-app/scheduler"
	"github.com/smileline/dental-clinic-app/utils"
)

// GetAvailability returns a dentist's open intervals for one date.
func GetAvailability(c *fiber.Ctx) error {
	dentistID, err := c.ParamsInt("dentist_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid dentist ID",
		})
	}

	date, err := parseClinicDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, use YYYY-MM-DD",
		})
	}

	open, err := scheduler.ResolveAvailability(uint(dentistID), date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve availability",
		})
	}

	return c.JSON(fiber.Map{
		"dentist_id": dentistID,
		"date":       date.Format("2006-01-02"),
		"intervals":  open,
	})
}

// GetAvailableSlots returns annotated candidate slots for a dentist, service
// and date. Listings are cached for a minute; bookings and schedule changes
// invalidate the affected day, so a cached "available" is at worst as stale
// as any listing raced by a booking.
func GetAvailableSlots(c *fiber.Ctx) error {
	dentistID, err := c.ParamsInt("dentist_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid dentist ID",
		})
	}

	serviceID, err := strconv.Atoi(c.Query("service_id"))
	if err != nil || serviceID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Service ID is required",
		})
	}

	dateStr := c.Query("date")
	date, err := parseClinicDate(dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, use YYYY-MM-DD",
		})
	}

	cacheKey := redis.SlotCacheKey(uint(dentistID), uint(serviceID), dateStr)
	if cached := redis.GetCachedSlots(cacheKey); cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	slots, err := scheduler.ListSlots(uint(dentistID), uint(serviceID), date)
	if err != nil {
		return c.Status(controllers.SchedulerErrorStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	response := fiber.Map{
		"dentist_id": dentistID,
		"service_id": serviceID,
		"date":       dateStr,
		"slots":      slots,
	}
	if payload, err := json.Marshal(response); err == nil {
		redis.CacheSlots(cacheKey, string(payload))
	}

	return c.JSON(response)
}

// parseClinicDate parses a YYYY-MM-DD date in the clinic's timezone.
func parseClinicDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, utils.ClinicLocation())
}
