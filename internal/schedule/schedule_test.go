package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeeklyScheduleValidate(t *testing.T) {
	valid := mondayOnly(
		TimeRange{Start: "09:00", End: "13:00"},
		TimeRange{Start: "15:00", End: "18:00"},
	)
	require.NoError(t, valid.Validate())

	// Touching ranges are allowed.
	touching := mondayOnly(
		TimeRange{Start: "09:00", End: "12:00"},
		TimeRange{Start: "12:00", End: "18:00"},
	)
	require.NoError(t, touching.Validate())

	overlapping := mondayOnly(
		TimeRange{Start: "09:00", End: "13:00"},
		TimeRange{Start: "12:00", End: "18:00"},
	)
	require.Error(t, overlapping.Validate())

	inverted := mondayOnly(TimeRange{Start: "13:00", End: "09:00"})
	require.Error(t, inverted.Validate())

	empty := mondayOnly(TimeRange{Start: "09:00", End: "09:00"})
	require.Error(t, empty.Validate())

	garbage := mondayOnly(TimeRange{Start: "9am", End: "18:00"})
	require.Error(t, garbage.Validate())
}

func TestValidateExceptions(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, ValidateExceptions([]Exception{
		{StartDate: day, EndDate: day, Type: ExceptionHoliday},
		{StartDate: day, EndDate: day.AddDate(0, 0, 14), Type: ExceptionVacation},
	}))

	require.Error(t, ValidateExceptions([]Exception{
		{StartDate: day, EndDate: day.AddDate(0, 0, -1), Type: ExceptionHoliday},
	}))

	require.Error(t, ValidateExceptions([]Exception{
		{StartDate: day, EndDate: day, Type: "sabbatical"},
	}))
}

func TestWeeklyScheduleJSONRoundTrip(t *testing.T) {
	ws := mondayOnly(
		TimeRange{Start: "09:00", End: "13:00"},
		TimeRange{Start: "15:00", End: "18:00"},
	)
	ws[time.Saturday] = DaySchedule{Enabled: true, Ranges: []TimeRange{{Start: "10:00", End: "14:00"}}}

	raw, err := json.Marshal(ws)
	require.NoError(t, err)

	var decoded WeeklySchedule
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, ws, decoded)

	// Slot generation sees the same availability either side of the
	// round trip.
	day := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC) // Saturday
	require.Equal(t,
		GenerateSlots(day, ws, nil, 60),
		GenerateSlots(day, decoded, nil, 60),
	)
}
