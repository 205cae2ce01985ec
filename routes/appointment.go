package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smileline/dental-clinic-app/controllers"
	"github.com/smileline/dental-clinic-app/controllers/dentist"
	"github.com/smileline/dental-clinic-app/controllers/patient"
	"github.com/smileline/dental-clinic-app/middleware"
	"github.com/smileline/dental-clinic-app/models"
)

// SetupAppointmentRoutes configures availability lookups, patient booking
// and the dentist's appointment management routes.
func SetupAppointmentRoutes(app *fiber.App) {
	// Public availability lookups
	dentists := app.Group("/dentists")
	dentists.Get("/:dentist_id/availability", patient.GetAvailability)
	dentists.Get("/:dentist_id/slots", patient.GetAvailableSlots)

	// Patient booking and lifecycle responses
	patientGroup := app.Group("/patient",
		middleware.Protected(), middleware.RequireRole(models.RolePatient, models.RoleAdmin))
	patientGroup.Get("/appointments", patient.GetMyAppointments)
	patientGroup.Post("/appointments", patient.BookAppointment)
	patientGroup.Patch("/appointments/:id/cancel", patient.CancelAppointment)
	patientGroup.Patch("/appointments/:id/respond", patient.RespondToSuggestion)

	// Dentist appointment management
	dentistGroup := app.Group("/dentist",
		middleware.Protected(), middleware.RequireRole(models.RoleDentist, models.RoleAdmin))
	dentistGroup.Get("/appointments/upcoming", dentist.GetUpcomingAppointments)
	dentistGroup.Get("/appointments/history", dentist.GetAppointmentHistory)
	dentistGroup.Patch("/appointments/:id/status", dentist.UpdateAppointmentStatus)
	dentistGroup.Patch("/appointments/:id/suggest", dentist.SuggestNewTime)
	dentistGroup.Patch("/appointments/:id/treatment", dentist.UpdateTreatment)

	// Manual reminder trigger for operators
	admin := app.Group("/admin",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	admin.Post("/reminders/run", controllers.RunReminderBatch)
}
