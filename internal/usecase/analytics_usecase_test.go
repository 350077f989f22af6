package usecase

import (
	"testing"

	"clinic-booking-system/internal/scheduling"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapMinutes(t *testing.T) {
	working := scheduling.Window{Start: scheduling.Clock(9, 0), End: scheduling.Clock(17, 0)}

	tests := []struct {
		name  string
		brk   scheduling.Window
		wantM int64
	}{
		{
			name:  "break inside working hours",
			brk:   scheduling.Window{Start: scheduling.Clock(12, 0), End: scheduling.Clock(13, 0)},
			wantM: 60,
		},
		{
			name:  "break straddles closing time",
			brk:   scheduling.Window{Start: scheduling.Clock(16, 30), End: scheduling.Clock(18, 0)},
			wantM: 30,
		},
		{
			name:  "break entirely outside",
			brk:   scheduling.Window{Start: scheduling.Clock(18, 0), End: scheduling.Clock(19, 0)},
			wantM: 0,
		},
		{
			name:  "break touching the edge",
			brk:   scheduling.Window{Start: scheduling.Clock(17, 0), End: scheduling.Clock(18, 0)},
			wantM: 0,
		},
		{
			name:  "break covers the whole day",
			brk:   scheduling.Window{Start: scheduling.Clock(0, 0), End: scheduling.Clock(23, 59)},
			wantM: 480,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantM, overlapMinutes(working, tt.brk))
		})
	}
}

func TestUtilizationLevel(t *testing.T) {
	assert.Equal(t, UtilizationLow, utilizationLevel(decimal.NewFromInt(0)))
	assert.Equal(t, UtilizationLow, utilizationLevel(decimal.NewFromInt(40)))
	assert.Equal(t, UtilizationMedium, utilizationLevel(decimal.NewFromFloat(40.01)))
	assert.Equal(t, UtilizationMedium, utilizationLevel(decimal.NewFromInt(70)))
	assert.Equal(t, UtilizationHigh, utilizationLevel(decimal.NewFromFloat(70.01)))
	assert.Equal(t, UtilizationHigh, utilizationLevel(decimal.NewFromInt(100)))
}

func TestParseDateRange(t *testing.T) {
	start, end, err := parseDateRange("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", scheduling.DateKey(start))
	assert.Equal(t, "2026-03-31", scheduling.DateKey(end))

	// single-day range is valid
	_, _, err = parseDateRange("2026-03-01", "2026-03-01")
	assert.NoError(t, err)

	_, _, err = parseDateRange("2026-03-31", "2026-03-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, _, err = parseDateRange("not-a-date", "2026-03-01")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, _, err = parseDateRange("2026-03-01", "31/03/2026")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
