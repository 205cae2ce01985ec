package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smileline/dental-clinic-app/controllers"
	"github.com/smileline/dental-clinic-app/middleware"
	"github.com/smileline/dental-clinic-app/models"
)

// SetupScheduleRoutes configures the dentist's working-hour and blocked-date
// management routes.
func SetupScheduleRoutes(app *fiber.App) {
	workingHour := app.Group("/working-hours",
		middleware.Protected(), middleware.RequireRole(models.RoleDentist, models.RoleAdmin))
	workingHour.Get("/", controllers.GetMyWorkingHours)
	workingHour.Post("/", controllers.CreateWorkingHour)
	workingHour.Patch("/:id", controllers.UpdateWorkingHour)
	workingHour.Delete("/:id", controllers.DeleteWorkingHour)

	blockedDate := app.Group("/blocked-dates",
		middleware.Protected(), middleware.RequireRole(models.RoleDentist, models.RoleAdmin))
	blockedDate.Get("/", controllers.GetMyBlockedDates)
	blockedDate.Post("/", controllers.CreateBlockedDate)
	blockedDate.Delete("/:id", controllers.DeleteBlockedDate)
}
