package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conflictFree(booked []Interval) func(Interval) bool {
	return func(candidate Interval) bool {
		return !HasConflict(candidate, booked)
	}
}

func TestNextSlotReturnsPreferredWhenFree(t *testing.T) {
	monday := day(t, "2026-03-02")

	start, ok := NextSlot(monday, Clock(9, 0), 30*time.Minute, 30*time.Minute, 10, conflictFree(nil))
	require.True(t, ok)
	assert.Equal(t, Clock(9, 0), start)
}

func TestNextSlotStepsPastConflicts(t *testing.T) {
	monday := day(t, "2026-03-02")
	booked := []Interval{
		{Date: monday, Start: Clock(9, 0), End: Clock(9, 30)},
		{Date: monday, Start: Clock(9, 30), End: Clock(10, 0)},
	}

	start, ok := NextSlot(monday, Clock(9, 0), 30*time.Minute, 30*time.Minute, 10, conflictFree(booked))
	require.True(t, ok)
	assert.Equal(t, Clock(10, 0), start)
}

func TestNextSlotExhaustsAttemptBound(t *testing.T) {
	monday := day(t, "2026-03-02")
	// Fully booked 09:00-14:00; ten 30-minute attempts from 09:00
	// never get past the block.
	var booked []Interval
	for c := Clock(9, 0); c < Clock(14, 0); c = c.Add(30 * time.Minute) {
		booked = append(booked, Interval{Date: monday, Start: c, End: c.Add(30 * time.Minute)})
	}

	_, ok := NextSlot(monday, Clock(9, 0), 30*time.Minute, 30*time.Minute, 10, conflictFree(booked))
	assert.False(t, ok)
}

func TestNextSlotHonorsCalendarPredicate(t *testing.T) {
	cal := weekdayCalendar() // Mon 09:00-17:00, break 12:00-13:00
	monday := day(t, "2026-03-02")
	booked := []Interval{
		{Date: monday, Start: Clock(11, 30), End: Clock(12, 0)},
	}

	free := func(candidate Interval) bool {
		return cal.FitsSlot(candidate) && !HasConflict(candidate, booked)
	}

	// 11:30 is booked, 12:00 and 12:30 fall in the break; first free is 13:00.
	start, ok := NextSlot(monday, Clock(11, 30), 30*time.Minute, 30*time.Minute, 10, free)
	require.True(t, ok)
	assert.Equal(t, Clock(13, 0), start)
}

func TestNextSlotStopsAtEndOfDay(t *testing.T) {
	monday := day(t, "2026-03-02")

	start, ok := NextSlot(monday, Clock(23, 30), 30*time.Minute, 30*time.Minute, 10, conflictFree(nil))
	require.True(t, ok)
	assert.Equal(t, Clock(23, 30), start)

	_, ok = NextSlot(monday, Clock(23, 45), 30*time.Minute, 30*time.Minute, 10, conflictFree(nil))
	assert.False(t, ok, "no candidate may cross midnight")
}

func TestNextEmergencySlotIgnoresCalendar(t *testing.T) {
	// No calendar is consulted at all: a slot at 03:00 is bookable.
	monday := day(t, "2026-03-02")

	start, ok := NextEmergencySlot(monday, Clock(3, 0), 30*time.Minute, 30*time.Minute, 4*time.Hour, nil)
	require.True(t, ok)
	assert.Equal(t, Clock(3, 0), start)
}

func TestNextEmergencySlotAvoidsBookings(t *testing.T) {
	monday := day(t, "2026-03-02")
	booked := []Interval{
		{Date: monday, Start: Clock(10, 0), End: Clock(10, 30)},
	}

	start, ok := NextEmergencySlot(monday, Clock(10, 0), 30*time.Minute, 30*time.Minute, 4*time.Hour, booked)
	require.True(t, ok)
	assert.Equal(t, Clock(10, 30), start)
}

func TestNextEmergencySlotExhaustsWindow(t *testing.T) {
	monday := day(t, "2026-03-02")
	// Fully booked 4-hour window at 30-minute granularity, including
	// the inclusive upper bound at 14:00.
	var booked []Interval
	for c := Clock(10, 0); c <= Clock(14, 0); c = c.Add(30 * time.Minute) {
		booked = append(booked, Interval{Date: monday, Start: c, End: c.Add(30 * time.Minute)})
	}

	_, ok := NextEmergencySlot(monday, Clock(10, 0), 30*time.Minute, 30*time.Minute, 4*time.Hour, booked)
	assert.False(t, ok, "exhausted window is a negative result, not an error")
}

func TestNextEmergencySlotWindowBoundInclusive(t *testing.T) {
	monday := day(t, "2026-03-02")
	var booked []Interval
	for c := Clock(10, 0); c < Clock(14, 0); c = c.Add(30 * time.Minute) {
		booked = append(booked, Interval{Date: monday, Start: c, End: c.Add(30 * time.Minute)})
	}

	start, ok := NextEmergencySlot(monday, Clock(10, 0), 30*time.Minute, 30*time.Minute, 4*time.Hour, booked)
	require.True(t, ok)
	assert.Equal(t, Clock(14, 0), start, "start+horizon itself is still a candidate")
}
