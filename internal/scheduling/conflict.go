package scheduling

// HasConflict reports whether the candidate interval overlaps any of
// the existing intervals. Callers pass intervals already filtered to
// the same doctor and date with cancelled appointments excluded; the
// check itself is a pure linear scan, which is fine at daily
// appointment counts.
func HasConflict(candidate Interval, existing []Interval) bool {
	for _, e := range existing {
		if candidate.Overlaps(e) {
			return true
		}
	}
	return false
}
