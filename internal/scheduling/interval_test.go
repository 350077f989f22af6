package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func ivl(t *testing.T, date string, start, end ClockTime) Interval {
	t.Helper()
	return Interval{Date: day(t, date), Start: start, End: end}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, Clock(9, 30), c)
	assert.Equal(t, "09:30", c.String())

	// Postgres time columns scan back with seconds
	c, err = ParseClock("09:30:00")
	require.NoError(t, err)
	assert.Equal(t, Clock(9, 30), c)

	_, err = ParseClock("25:00")
	assert.ErrorIs(t, err, ErrInvalidClockTime)
	_, err = ParseClock("9.30")
	assert.ErrorIs(t, err, ErrInvalidClockTime)
}

func TestNewIntervalRejectsZeroDuration(t *testing.T) {
	_, err := NewInterval(day(t, "2026-03-02"), Clock(9, 0), 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval(day(t, "2026-03-02"), Clock(9, 0), -30*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestNewIntervalRejectsMidnightCrossing(t *testing.T) {
	_, err := NewInterval(day(t, "2026-03-02"), Clock(23, 45), 30*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	iv, err := NewInterval(day(t, "2026-03-02"), Clock(23, 30), 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, EndOfDay, iv.End)
}

func TestOverlapsSymmetry(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", ivl(t, "2026-03-02", Clock(9, 0), Clock(9, 30)), ivl(t, "2026-03-02", Clock(9, 0), Clock(9, 30)), true},
		{"partial", ivl(t, "2026-03-02", Clock(9, 0), Clock(9, 30)), ivl(t, "2026-03-02", Clock(9, 15), Clock(9, 45)), true},
		{"contained", ivl(t, "2026-03-02", Clock(9, 0), Clock(10, 0)), ivl(t, "2026-03-02", Clock(9, 15), Clock(9, 30)), true},
		{"back to back", ivl(t, "2026-03-02", Clock(9, 0), Clock(9, 30)), ivl(t, "2026-03-02", Clock(9, 30), Clock(10, 0)), false},
		{"disjoint", ivl(t, "2026-03-02", Clock(9, 0), Clock(9, 30)), ivl(t, "2026-03-02", Clock(11, 0), Clock(11, 30)), false},
		{"different dates", ivl(t, "2026-03-02", Clock(9, 0), Clock(9, 30)), ivl(t, "2026-03-03", Clock(9, 0), Clock(9, 30)), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []Interval{
		ivl(t, "2026-03-02", Clock(9, 0), Clock(9, 30)),
		ivl(t, "2026-03-02", Clock(14, 0), Clock(14, 30)),
	}

	assert.True(t, HasConflict(ivl(t, "2026-03-02", Clock(9, 0), Clock(9, 30)), existing), "exact duplicate")
	assert.True(t, HasConflict(ivl(t, "2026-03-02", Clock(9, 15), Clock(9, 45)), existing), "partial overlap")
	assert.False(t, HasConflict(ivl(t, "2026-03-02", Clock(9, 30), Clock(10, 0)), existing), "boundary touch")
	assert.False(t, HasConflict(ivl(t, "2026-03-03", Clock(9, 0), Clock(9, 30)), existing), "different date")
	assert.False(t, HasConflict(ivl(t, "2026-03-02", Clock(10, 0), Clock(10, 30)), nil), "no existing bookings")
}
