// Package scheduling implements the appointment scheduling engine:
// interval overlap detection, doctor calendars, free-slot enumeration
// and bounded forward searches. It is pure and does no I/O; persistence
// and transport live in the repository and delivery layers.
package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ClockLayout is the wire format for clock times.
	ClockLayout = "15:04"

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"

	minutesPerDay = 24 * 60
)

var (
	ErrInvalidClockTime = errors.New("invalid clock time, use HH:MM")
	ErrInvalidDate      = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidWeekday   = errors.New("invalid weekday name")
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps a weekday name (case-insensitive) onto the closed
// time.Weekday enumeration, keeping calendar lookups total and
// typo-proof at the API boundary.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(name)]
	if !ok {
		return 0, ErrInvalidWeekday
	}
	return day, nil
}

// ClockTime is a local wall-clock time expressed as minutes since
// midnight. Values are always within [0, 1440); interval ends may
// reach 1440 (end of day) but never cross it.
type ClockTime int

// Clock builds a ClockTime from an hour and minute.
func Clock(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClock parses an HH:MM string into a ClockTime. Seconds are
// accepted and discarded; Postgres time columns read back as HH:MM:SS.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		if t, err = time.Parse("15:04:05", s); err != nil {
			return 0, ErrInvalidClockTime
		}
	}
	return Clock(t.Hour(), t.Minute()), nil
}

// ClockOf extracts the wall-clock time of an instant, discarding seconds.
func ClockOf(t time.Time) ClockTime {
	return Clock(t.Hour(), t.Minute())
}

// Add moves the clock time forward. The result may reach or exceed
// end of day; callers bound their scans with EndOfDay.
func (c ClockTime) Add(d time.Duration) ClockTime {
	return c + ClockTime(d/time.Minute)
}

// Before reports whether c is strictly earlier than o.
func (c ClockTime) Before(o ClockTime) bool { return c < o }

// String formats the clock time as HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// EndOfDay is the exclusive upper bound for interval ends.
const EndOfDay = ClockTime(minutesPerDay)

// ParseDate parses a YYYY-MM-DD string into a normalized calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// DateKey normalizes an instant to its YYYY-MM-DD key. Dates are
// compared by key throughout the engine so that differing time
// components never make equal dates unequal.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
