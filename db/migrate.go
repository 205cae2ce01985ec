package db

import (
	"fmt"
	"log"

	"github.com/smileline/dental-clinic-app/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.DentalService{},
		&models.WorkingHours{},
		&models.BlockedDate{},
		&models.Appointment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedRoles()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedRoles creates the three fixed roles if they do not exist yet.
func seedRoles() {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Clinic administrator with full access"},
		{Name: models.RoleDentist, Description: "Dentist who manages a calendar and appointments"},
		{Name: models.RolePatient, Description: "Patient who books appointments"},
	}
	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}
}
