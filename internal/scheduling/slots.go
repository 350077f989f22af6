package scheduling

import "time"

// FreeSlots enumerates the ordered start times of fixed-duration slots
// a doctor can still take on a date. The scan starts at the weekday's
// opening time and steps by slotDuration; a position is emitted only
// when the candidate interval fits before closing and overlaps neither
// a break window nor an existing booked interval.
//
// An empty result means the doctor is on leave, has no working hours
// for that weekday, or the day is fully booked. The sequence carries
// no hidden state; calling it again yields the same slots.
func FreeSlots(cal WeekCalendar, date time.Time, booked []Interval, slotDuration time.Duration) []ClockTime {
	if slotDuration <= 0 {
		return nil
	}
	hours, ok := cal.Hours[date.Weekday()]
	if !ok || cal.OnLeave(date) {
		return nil
	}

	var slots []ClockTime
	for cur := hours.Start; cur.Add(slotDuration) <= hours.End; cur = cur.Add(slotDuration) {
		candidate := Interval{Date: date, Start: cur, End: cur.Add(slotDuration)}
		if !cal.FitsSlot(candidate) {
			continue
		}
		if HasConflict(candidate, booked) {
			continue
		}
		slots = append(slots, cur)
	}
	return slots
}
