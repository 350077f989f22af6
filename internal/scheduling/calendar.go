package scheduling

import "time"

// Window is an inclusive working-hours or break window within a day.
type Window struct {
	Start ClockTime
	End   ClockTime
}

// Contains reports whether a clock time falls inside the window.
// Bounds are inclusive: an instant equal to the closing time is still
// inside the window, so a slot starting exactly at close is rejected
// elsewhere by the slot-fits-before-close check.
func (w Window) Contains(t ClockTime) bool {
	return w.Start <= t && t <= w.End
}

// interval converts the window to a half-open interval on a date, for
// overlap tests against candidate slots.
func (w Window) interval(date time.Time) Interval {
	return Interval{Date: date, Start: w.Start, End: w.End}
}

// WeekCalendar is a doctor's recurring weekly availability: one
// working-hours window per weekday, additive break windows, and a set
// of full-day leave dates keyed by DateKey. It answers the pure
// "is this instant inside the workday" question; existing bookings are
// the conflict checker's concern and the two compose by logical AND.
type WeekCalendar struct {
	Hours  map[time.Weekday]Window
	Breaks map[time.Weekday][]Window
	Leave  map[string]struct{}
}

// NewWeekCalendar returns an empty calendar ready for population.
func NewWeekCalendar() WeekCalendar {
	return WeekCalendar{
		Hours:  make(map[time.Weekday]Window),
		Breaks: make(map[time.Weekday][]Window),
		Leave:  make(map[string]struct{}),
	}
}

// SetHours assigns the working window for a weekday, replacing any
// prior assignment.
func (c WeekCalendar) SetHours(day time.Weekday, w Window) {
	c.Hours[day] = w
}

// AddBreak appends a break window for a weekday. Breaks are additive;
// a break lying outside working hours is harmless because slot
// generation never reaches it.
func (c WeekCalendar) AddBreak(day time.Weekday, w Window) {
	c.Breaks[day] = append(c.Breaks[day], w)
}

// AddLeave marks a full calendar date as unavailable.
func (c WeekCalendar) AddLeave(date time.Time) {
	c.Leave[DateKey(date)] = struct{}{}
}

// OnLeave reports whether the doctor is on leave for the date.
func (c WeekCalendar) OnLeave(date time.Time) bool {
	_, ok := c.Leave[DateKey(date)]
	return ok
}

// FitsSlot reports whether a candidate slot lies wholly inside the
// workday: not on leave, within the weekday's working window, and not
// overlapping any break. Breaks are tested as half-open intervals here
// so that a slot starting exactly where a break ends stays bookable —
// the same rule slot generation applies. Existing bookings are not
// consulted; callers AND this with the conflict check.
func (c WeekCalendar) FitsSlot(candidate Interval) bool {
	if c.OnLeave(candidate.Date) {
		return false
	}
	hours, ok := c.Hours[candidate.Date.Weekday()]
	if !ok {
		return false
	}
	if candidate.Start < hours.Start || candidate.End > hours.End {
		return false
	}
	for _, b := range c.Breaks[candidate.Date.Weekday()] {
		if candidate.Overlaps(b.interval(candidate.Date)) {
			return false
		}
	}
	return true
}

// Available reports whether the doctor is inside the workday at the
// given instant: not on leave, the weekday has a working window, the
// instant is within it, and no break window covers it.
func (c WeekCalendar) Available(date time.Time, at ClockTime) bool {
	if c.OnLeave(date) {
		return false
	}
	hours, ok := c.Hours[date.Weekday()]
	if !ok {
		return false
	}
	if !hours.Contains(at) {
		return false
	}
	for _, b := range c.Breaks[date.Weekday()] {
		if b.Contains(at) {
			return false
		}
	}
	return true
}
