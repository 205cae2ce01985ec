package models

import (
	"time"
)

type User struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	Name                string         `json:"name"`
	Email               string         `json:"email" gorm:"unique"`
	Password            string         `json:"password,omitempty"`
	Phone               string         `json:"phone"`
	RoleID              uint           `json:"role_id"`
	Role                Role           `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	WorkingHours        []WorkingHours `json:"working_hours,omitempty" gorm:"foreignKey:DentistID"`
	BlockedDates        []BlockedDate  `json:"blocked_dates,omitempty" gorm:"foreignKey:DentistID"`
	Appointments        []Appointment  `json:"appointments,omitempty" gorm:"foreignKey:DentistID"`
	PatientAppointments []Appointment  `json:"patient_appointments,omitempty" gorm:"foreignKey:PatientID"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// IsDentist reports whether the user's preloaded role is the dentist role.
func (u *User) IsDentist() bool {
	return u.Role.Name == RoleDentist
}
