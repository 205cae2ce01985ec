package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smileline/dental-clinic-app/models"
)

// mondaySlots generates slots for the standard Mon-Sat 09:00-17:00 schedule
// with a 12:00-13:00 lunch break.
func mondaySlots(t *testing.T, serviceDuration time.Duration) []time.Time {
	t.Helper()
	open, err := OpenIntervals(standardRule(), nil, monday)
	require.NoError(t, err)
	return GenerateSlots(open, serviceDuration, DefaultSlotIncrement)
}

func TestGenerateSlotsThirtyMinuteService(t *testing.T) {
	starts := mondaySlots(t, 30*time.Minute)

	var want []time.Time
	for _, clock := range []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	} {
		at, err := atClockTime(monday, clock)
		require.NoError(t, err)
		want = append(want, at)
	}

	assert.Equal(t, want, starts)

	// Nothing may be offered during the lunch break.
	for _, clock := range []string{"12:00", "12:30"} {
		at, _ := atClockTime(monday, clock)
		assert.NotContains(t, starts, at)
	}
}

func TestGenerateSlotsLongServiceRespectsClose(t *testing.T) {
	starts := mondaySlots(t, 90*time.Minute)

	// 16:30 + 90min = 18:00 runs past the 17:00 close.
	late, _ := atClockTime(monday, "16:30")
	assert.NotContains(t, starts, late)

	lastAfternoon, _ := atClockTime(monday, "15:30")
	assert.Contains(t, starts, lastAfternoon)

	// Morning slots must fit before the break: 10:30+90min = 12:00 exactly.
	lastMorning, _ := atClockTime(monday, "10:30")
	assert.Contains(t, starts, lastMorning)
	tooLate, _ := atClockTime(monday, "11:00")
	assert.NotContains(t, starts, tooLate)
}

func TestGenerateSlotsEverySlotFits(t *testing.T) {
	open, err := OpenIntervals(standardRule(), nil, monday)
	require.NoError(t, err)

	for _, duration := range []time.Duration{15 * time.Minute, 30 * time.Minute, 45 * time.Minute, 2 * time.Hour} {
		for _, start := range GenerateSlots(open, duration, DefaultSlotIncrement) {
			candidate := TimeRange{Start: start, End: start.Add(duration)}
			assert.True(t, withinOpenIntervals(open, candidate),
				"slot %s with duration %s must fit inside an open interval", start.Format("15:04"), duration)
		}
	}
}

func TestGenerateSlotsIsIdempotent(t *testing.T) {
	first := mondaySlots(t, 30*time.Minute)
	second := mondaySlots(t, 30*time.Minute)
	assert.Equal(t, first, second)
}

func TestGenerateSlotsDegenerateInputs(t *testing.T) {
	open := []TimeRange{tr(9, 0, 17, 0)}
	assert.Nil(t, GenerateSlots(open, 0, DefaultSlotIncrement))
	assert.Nil(t, GenerateSlots(open, 30*time.Minute, 0))
	assert.Nil(t, GenerateSlots(nil, 30*time.Minute, DefaultSlotIncrement))
}

func TestAnnotateSlotsMarksConflicts(t *testing.T) {
	booked := tr(10, 0, 10, 30)
	appointments := []models.Appointment{
		{DentistID: 1, StartTime: booked.Start, EndTime: booked.End, Status: models.StatusConfirmed},
	}

	starts := mondaySlots(t, 30*time.Minute)
	slots := AnnotateSlots(starts, 30*time.Minute, appointments)
	require.Len(t, slots, len(starts))

	byClock := map[string]bool{}
	for _, slot := range slots {
		byClock[slot.Start.Format("15:04")] = slot.Available
	}

	assert.False(t, byClock["10:00"], "the booked slot itself")
	assert.True(t, byClock["09:30"], "ends exactly at the booked start, touching is fine")
	assert.True(t, byClock["10:30"], "starts exactly at the booked end")
	assert.True(t, byClock["11:00"])
}

func TestAnnotateSlotsIgnoresCancelled(t *testing.T) {
	booked := tr(10, 0, 10, 30)
	appointments := []models.Appointment{
		{DentistID: 1, StartTime: booked.Start, EndTime: booked.End, Status: models.StatusCancelled},
	}

	slots := AnnotateSlots([]time.Time{booked.Start}, 30*time.Minute, appointments)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Available, "cancelled appointments do not block")
}

func TestHasOverlapBoundary(t *testing.T) {
	existing := []models.Appointment{
		{StartTime: tr(10, 0, 10, 30).Start, EndTime: tr(10, 0, 10, 30).End, Status: models.StatusConfirmed},
	}

	// 10:15-10:45 collides, 10:30-11:00 touches and does not.
	assert.True(t, HasOverlap(existing, tr(10, 15, 10, 45)))
	assert.False(t, HasOverlap(existing, tr(10, 30, 11, 0)))
	assert.False(t, HasOverlap(existing, tr(9, 30, 10, 0)))

	// A candidate strictly containing the existing appointment collides too.
	assert.True(t, HasOverlap(existing, tr(9, 30, 11, 0)))
}
