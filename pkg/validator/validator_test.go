package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clockTimeProbe struct {
	Time string `validate:"required,clocktime"`
}

type weekdayProbe struct {
	Day string `validate:"required,weekday"`
}

func TestClockTimeValidation(t *testing.T) {
	v := NewValidator()

	for _, valid := range []string{"00:00", "09:30", "23:59"} {
		assert.NoError(t, v.Validate(clockTimeProbe{Time: valid}), valid)
	}

	for _, invalid := range []string{"24:00", "09:60", "9am", "morning", "09:00:00:00"} {
		assert.Error(t, v.Validate(clockTimeProbe{Time: invalid}), invalid)
	}
}

func TestWeekdayValidation(t *testing.T) {
	v := NewValidator()

	for _, valid := range []string{"monday", "Friday", "SUNDAY"} {
		assert.NoError(t, v.Validate(weekdayProbe{Day: valid}), valid)
	}

	for _, invalid := range []string{"funday", "mon", ""} {
		assert.Error(t, v.Validate(weekdayProbe{Day: invalid}), invalid)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(clockTimeProbe{Time: "noon"})
	require.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Equal(t, "Time must be a valid HH:MM time", formatted["Time"])
}
