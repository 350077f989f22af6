package scheduling

import (
	"errors"
	"time"
)

// ErrInvalidInterval rejects zero or negative durations and intervals
// that would cross midnight.
var ErrInvalidInterval = errors.New("invalid interval: end must be after start within the same day")

// Interval is a half-open time range [Start, End) on a calendar date.
// Intervals on different dates never overlap.
type Interval struct {
	Date  time.Time
	Start ClockTime
	End   ClockTime
}

// NewInterval builds an interval from a start time and duration.
// Zero-duration intervals are invalid, as are intervals extending past
// end of day.
func NewInterval(date time.Time, start ClockTime, duration time.Duration) (Interval, error) {
	if duration <= 0 || start < 0 {
		return Interval{}, ErrInvalidInterval
	}
	end := start.Add(duration)
	if end <= start || end > EndOfDay {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Date: date, Start: start, End: end}, nil
}

// Duration returns the interval length.
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.End-iv.Start) * time.Minute
}

// Overlaps reports whether two intervals share any instant. Intervals
// that merely touch at a boundary do not overlap: [09:00,09:30) and
// [09:30,10:00) are back-to-back bookable. The test is symmetric.
func (iv Interval) Overlaps(o Interval) bool {
	if DateKey(iv.Date) != DateKey(o.Date) {
		return false
	}
	return iv.Start < o.End && o.Start < iv.End
}
