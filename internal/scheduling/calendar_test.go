package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// weekday reference: 2026-03-02 is a Monday.

func weekdayCalendar() WeekCalendar {
	cal := NewWeekCalendar()
	cal.SetHours(time.Monday, Window{Start: Clock(9, 0), End: Clock(17, 0)})
	cal.AddBreak(time.Monday, Window{Start: Clock(12, 0), End: Clock(13, 0)})
	return cal
}

func TestAvailableInsideWorkingHours(t *testing.T) {
	cal := weekdayCalendar()
	monday := day(t, "2026-03-02")

	assert.True(t, cal.Available(monday, Clock(9, 0)))
	assert.True(t, cal.Available(monday, Clock(16, 30)))
	assert.False(t, cal.Available(monday, Clock(8, 30)), "before opening")
	assert.False(t, cal.Available(monday, Clock(17, 30)), "after closing")
}

func TestAvailableBoundsInclusive(t *testing.T) {
	cal := weekdayCalendar()
	monday := day(t, "2026-03-02")

	// The closing instant itself is inside the window; whether a slot
	// can start there is decided by the slot-fits check, not here.
	assert.True(t, cal.Available(monday, Clock(17, 0)))
	// Break bounds are inclusive on both ends.
	assert.False(t, cal.Available(monday, Clock(12, 0)))
	assert.False(t, cal.Available(monday, Clock(13, 0)))
	assert.False(t, cal.Available(monday, Clock(12, 30)))
}

func TestAvailableNoScheduleForWeekday(t *testing.T) {
	cal := weekdayCalendar()
	sunday := day(t, "2026-03-08")

	assert.False(t, cal.Available(sunday, Clock(10, 0)))
}

func TestAvailableOnLeave(t *testing.T) {
	cal := weekdayCalendar()
	monday := day(t, "2026-03-02")
	cal.AddLeave(monday)

	assert.True(t, cal.OnLeave(monday))
	assert.False(t, cal.Available(monday, Clock(10, 0)), "leave overrides working hours")

	nextMonday := day(t, "2026-03-09")
	assert.True(t, cal.Available(nextMonday, Clock(10, 0)), "leave is per date, not per weekday")
}

func TestSetHoursReplacesWindow(t *testing.T) {
	cal := weekdayCalendar()
	monday := day(t, "2026-03-02")

	cal.SetHours(time.Monday, Window{Start: Clock(13, 0), End: Clock(15, 0)})
	assert.False(t, cal.Available(monday, Clock(9, 30)))
	assert.True(t, cal.Available(monday, Clock(14, 0)))
}

func TestMultipleBreaksAdditive(t *testing.T) {
	cal := weekdayCalendar()
	cal.AddBreak(time.Monday, Window{Start: Clock(15, 0), End: Clock(15, 30)})
	monday := day(t, "2026-03-02")

	assert.False(t, cal.Available(monday, Clock(12, 30)))
	assert.False(t, cal.Available(monday, Clock(15, 15)))
	assert.True(t, cal.Available(monday, Clock(14, 0)))
}
