package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayWindow(t *testing.T) {
	u := &doctorScheduleUsecase{}

	weekday, window, err := u.parseDayWindow("monday", "09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, weekday)
	assert.Equal(t, "09:00", window.Start.String())
	assert.Equal(t, "17:00", window.End.String())

	// weekday names are case-insensitive
	weekday, _, err = u.parseDayWindow("FRIDAY", "08:30", "12:00")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, weekday)

	_, _, err = u.parseDayWindow("funday", "09:00", "17:00")
	assert.ErrorIs(t, err, ErrInvalidWeekdayName)

	_, _, err = u.parseDayWindow("monday", "9am", "17:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, _, err = u.parseDayWindow("monday", "09:00", "25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	// start must come strictly before end
	_, _, err = u.parseDayWindow("monday", "17:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, _, err = u.parseDayWindow("monday", "09:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
