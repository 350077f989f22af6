package scheduling

import "time"

// NextSlot scans forward from a preferred start time, stepping by the
// given granularity for at most maxAttempts candidates, and returns
// the first start whose interval satisfies the free predicate. The
// predicate composes whatever admissibility the caller needs —
// ordinary booking passes calendar availability AND conflict freedom.
//
// The search is deterministic and total: it terminates by exhausting
// its attempt bound, and a miss is a normal negative result.
func NextSlot(date time.Time, preferred ClockTime, duration, step time.Duration, maxAttempts int, free func(Interval) bool) (ClockTime, bool) {
	if duration <= 0 || step <= 0 {
		return 0, false
	}
	cur := preferred
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if cur.Add(duration) > EndOfDay {
			break
		}
		candidate := Interval{Date: date, Start: cur, End: cur.Add(duration)}
		if free(candidate) {
			return cur, true
		}
		cur = cur.Add(step)
	}
	return 0, false
}

// NextEmergencySlot scans the bounded window [from, from+horizon] for
// the first start whose interval avoids every booked interval.
// Emergencies deliberately bypass working hours, breaks and leave;
// only existing bookings block a slot. Exhausting the window is a
// legitimate "no slot available", not an error.
func NextEmergencySlot(date time.Time, from ClockTime, duration, step, horizon time.Duration, booked []Interval) (ClockTime, bool) {
	if duration <= 0 || step <= 0 || horizon < 0 {
		return 0, false
	}
	limit := from.Add(horizon)
	for cur := from; cur <= limit; cur = cur.Add(step) {
		if cur.Add(duration) > EndOfDay {
			break
		}
		candidate := Interval{Date: date, Start: cur, End: cur.Add(duration)}
		if !HasConflict(candidate, booked) {
			return cur, true
		}
	}
	return 0, false
}
