package models

import (
	"gorm.io/gorm"
)

// DentalService is a bookable treatment offered by the clinic. The scheduling
// engine only reads Duration; price is snapshotted onto the appointment at
// booking time.
type DentalService struct {
	gorm.Model
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    Duration `json:"duration" gorm:"type:jsonb"`
	Price       float64  `json:"price"`
	IsActive    bool     `json:"is_active" gorm:"default:true"`
}
