package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/smileline/dental-clinic-app/cron"
	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/redis"
	"github.com/smileline/dental-clinic-app/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Dental clinic booking API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupScheduleRoutes(app)
	routes.SetupAppointmentRoutes(app)

	if err := app.Listen(":8000"); err != nil {
		log.Fatal(err)
	}
}
