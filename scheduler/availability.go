package scheduler

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/models"
)

// ResolveAvailability returns the ordered, non-overlapping open intervals for
// a dentist on one calendar date: the weekday's working-hour rule minus the
// recurring break minus any blocked-date entries. An empty result means the
// dentist is fully unavailable that day.
func ResolveAvailability(dentistID uint, date time.Time) ([]TimeRange, error) {
	var rule models.WorkingHours
	err := db.DB.
		Where("dentist_id = ? AND day_of_week = ? AND is_work_day = ?", dentistID, int(date.Weekday()), true).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var blocks []models.BlockedDate
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if err := db.DB.
		Where("dentist_id = ? AND date = ?", dentistID, dayStart.Format("2006-01-02")).
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return OpenIntervals(rule, blocks, date)
}

// OpenIntervals applies a working-hour rule and a date's blocked entries to
// produce the open intervals for that date. Pure; callers that already hold
// the rows can use it directly.
func OpenIntervals(rule models.WorkingHours, blocks []models.BlockedDate, date time.Time) ([]TimeRange, error) {
	if !rule.IsWorkDay {
		return nil, nil
	}

	start, err := atClockTime(date, rule.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := atClockTime(date, rule.EndTime)
	if err != nil {
		return nil, err
	}
	base := TimeRange{Start: start, End: end}
	if !base.IsValid() {
		return nil, nil
	}
	open := []TimeRange{base}

	if rule.BreakStart != nil && rule.BreakEnd != nil {
		breakStart, err := atClockTime(date, *rule.BreakStart)
		if err != nil {
			return nil, err
		}
		breakEnd, err := atClockTime(date, *rule.BreakEnd)
		if err != nil {
			return nil, err
		}
		open = SubtractAll(open, []TimeRange{{Start: breakStart, End: breakEnd}})
	}

	for _, block := range blocks {
		if block.FullDay {
			return nil, nil
		}
		if block.StartTime == nil || block.EndTime == nil {
			continue
		}
		blockStart, err := atClockTime(date, *block.StartTime)
		if err != nil {
			return nil, err
		}
		blockEnd, err := atClockTime(date, *block.EndTime)
		if err != nil {
			return nil, err
		}
		open = SubtractAll(open, []TimeRange{{Start: blockStart, End: blockEnd}})
	}

	return open, nil
}

// withinOpenIntervals reports whether the candidate lies fully inside one of
// the open intervals. A candidate spanning two sub-intervals (e.g. across a
// lunch break) is rejected.
func withinOpenIntervals(open []TimeRange, candidate TimeRange) bool {
	for _, r := range open {
		if r.Contains(candidate) {
			return true
		}
	}
	return false
}
