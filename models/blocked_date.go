package models

import (
	"time"

	"gorm.io/gorm"
)

// BlockedDate removes availability a working-hour rule would otherwise grant
// on one calendar date. FullDay blanks the whole date; otherwise only
// [StartTime, EndTime) is unavailable.
type BlockedDate struct {
	gorm.Model
	DentistID uint      `json:"dentist_id" gorm:"index"`
	Dentist   User      `json:"dentist,omitempty" gorm:"foreignKey:DentistID"`
	Date      time.Time `json:"date" gorm:"type:date;index"`
	FullDay   bool      `json:"full_day" gorm:"default:false"`
	StartTime *string   `json:"start_time"` // Format "HH:MM", required when not FullDay
	EndTime   *string   `json:"end_time"`
	Reason    string    `json:"reason"`
}
