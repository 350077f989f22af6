package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFreeSlotsOneHourWindow(t *testing.T) {
	cal := NewWeekCalendar()
	cal.SetHours(time.Monday, Window{Start: Clock(9, 0), End: Clock(10, 0)})
	monday := day(t, "2026-03-02")

	slots := FreeSlots(cal, monday, nil, 30*time.Minute)
	assert.Equal(t, []ClockTime{Clock(9, 0), Clock(9, 30)}, slots,
		"a one-hour window yields exactly two back-to-back 30-minute slots")
}

func TestFreeSlotsSkipsBreaks(t *testing.T) {
	cal := weekdayCalendar() // Mon 09:00-17:00, break 12:00-13:00
	monday := day(t, "2026-03-02")

	slots := FreeSlots(cal, monday, nil, 30*time.Minute)
	assert.NotContains(t, slots, Clock(12, 0))
	assert.NotContains(t, slots, Clock(12, 30))
	assert.Contains(t, slots, Clock(11, 30))
	assert.Contains(t, slots, Clock(13, 0))
	// 8h window minus the 1h break at 30-minute granularity.
	assert.Len(t, slots, 14)
}

func TestFreeSlotsSkipsBookedIntervals(t *testing.T) {
	cal := NewWeekCalendar()
	cal.SetHours(time.Monday, Window{Start: Clock(9, 0), End: Clock(11, 0)})
	monday := day(t, "2026-03-02")

	booked := []Interval{
		{Date: monday, Start: Clock(9, 15), End: Clock(9, 45)},
	}
	slots := FreeSlots(cal, monday, booked, 30*time.Minute)
	// 09:00 and 09:30 both overlap the booking; 10:00 and 10:30 remain.
	assert.Equal(t, []ClockTime{Clock(10, 0), Clock(10, 30)}, slots)
}

func TestFreeSlotsEmptyOnLeave(t *testing.T) {
	cal := weekdayCalendar()
	monday := day(t, "2026-03-02")
	cal.AddLeave(monday)

	assert.Empty(t, FreeSlots(cal, monday, nil, 30*time.Minute),
		"leave blocks every slot regardless of configured hours")
}

func TestFreeSlotsEmptyWithoutWeekdayEntry(t *testing.T) {
	cal := weekdayCalendar()
	sunday := day(t, "2026-03-08")

	assert.Empty(t, FreeSlots(cal, sunday, nil, 30*time.Minute))
}

func TestFreeSlotsFullDay(t *testing.T) {
	cal := NewWeekCalendar()
	cal.SetHours(time.Monday, Window{Start: Clock(9, 0), End: Clock(10, 0)})
	monday := day(t, "2026-03-02")

	booked := []Interval{
		{Date: monday, Start: Clock(9, 0), End: Clock(9, 30)},
		{Date: monday, Start: Clock(9, 30), End: Clock(10, 0)},
	}
	assert.Empty(t, FreeSlots(cal, monday, booked, 30*time.Minute))
}

func TestFreeSlotsBreakOutsideWorkingHoursIsHarmless(t *testing.T) {
	cal := NewWeekCalendar()
	cal.SetHours(time.Monday, Window{Start: Clock(9, 0), End: Clock(11, 0)})
	cal.AddBreak(time.Monday, Window{Start: Clock(18, 0), End: Clock(19, 0)})
	monday := day(t, "2026-03-02")

	slots := FreeSlots(cal, monday, nil, 30*time.Minute)
	assert.Len(t, slots, 4, "a break never reached by the scan removes nothing")
}

func TestFreeSlotsLastSlotMustFitBeforeClose(t *testing.T) {
	cal := NewWeekCalendar()
	cal.SetHours(time.Monday, Window{Start: Clock(9, 0), End: Clock(9, 45)})
	monday := day(t, "2026-03-02")

	slots := FreeSlots(cal, monday, nil, 30*time.Minute)
	assert.Equal(t, []ClockTime{Clock(9, 0)}, slots,
		"09:30 would run past the 09:45 close and is not emitted")
}

func TestFreeSlotsRestartable(t *testing.T) {
	cal := weekdayCalendar()
	monday := day(t, "2026-03-02")

	first := FreeSlots(cal, monday, nil, 30*time.Minute)
	second := FreeSlots(cal, monday, nil, 30*time.Minute)
	assert.Equal(t, first, second)
}
