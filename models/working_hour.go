package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WorkingHours is a dentist's recurring weekly availability template for one
// weekday. At most one row per (dentist, weekday) is expected to have
// IsWorkDay set. BreakStart/BreakEnd model a recurring mid-day break such as
// lunch; one-off exceptions live in BlockedDate instead.
type WorkingHours struct {
	gorm.Model
	DentistID  uint      `json:"dentist_id" gorm:"index"`
	Dentist    User      `json:"dentist,omitempty" gorm:"foreignKey:DentistID"`
	DayOfWeek  DayOfWeek `json:"day_of_week"`
	StartTime  string    `json:"start_time"` // Format "HH:MM" in 24h
	EndTime    string    `json:"end_time"`   // Format "HH:MM" in 24h
	IsWorkDay  bool      `json:"is_work_day"`
	BreakStart *string   `json:"break_start"` // Optional break start time
	BreakEnd   *string   `json:"break_end"`   // Optional break end time
}

// DefaultWorkingWeek returns the clinic's standard schedule for a newly
// registered dentist: Monday through Saturday 09:00-17:00 with a 12:00-13:00
// lunch break, Sunday off.
func DefaultWorkingWeek(dentistID uint) []WorkingHours {
	breakStart, breakEnd := "12:00", "13:00"
	week := []WorkingHours{
		{DentistID: dentistID, DayOfWeek: Sunday, StartTime: "09:00", EndTime: "17:00", IsWorkDay: false},
	}
	for day := Monday; day <= Saturday; day++ {
		week = append(week, WorkingHours{
			DentistID:  dentistID,
			DayOfWeek:  day,
			StartTime:  "09:00",
			EndTime:    "17:00",
			IsWorkDay:  true,
			BreakStart: &breakStart,
			BreakEnd:   &breakEnd,
		})
	}
	return week
}
