package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 2025-06-02 is a Monday.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func mondayOnly(ranges ...TimeRange) WeeklySchedule {
	var ws WeeklySchedule
	ws[time.Monday] = DaySchedule{Enabled: true, Ranges: ranges}
	return ws
}

func TestGenerateSlotsDisabledDay(t *testing.T) {
	ws := mondayOnly(TimeRange{Start: "09:00", End: "18:00"})
	ws[time.Monday].Enabled = false

	slots := GenerateSlots(monday, ws, nil, 30)
	require.Empty(t, slots)
}

func TestGenerateSlotsNoRanges(t *testing.T) {
	var ws WeeklySchedule
	ws[time.Monday] = DaySchedule{Enabled: true}

	slots := GenerateSlots(monday, ws, nil, 30)
	require.Empty(t, slots)
}

func TestGenerateSlotsExactFit(t *testing.T) {
	ws := mondayOnly(TimeRange{Start: "09:00", End: "10:00"})

	slots := GenerateSlots(monday, ws, nil, 60)
	require.Equal(t, []string{"09:00"}, slots)
}

func TestGenerateSlotsFixedStep(t *testing.T) {
	// A 60-minute service still advances on the 30-minute grid.
	ws := mondayOnly(TimeRange{Start: "09:00", End: "10:30"})

	slots := GenerateSlots(monday, ws, nil, 60)
	require.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestGenerateSlotsMultipleRanges(t *testing.T) {
	ws := mondayOnly(
		TimeRange{Start: "09:00", End: "13:00"},
		TimeRange{Start: "15:00", End: "18:00"},
	)

	slots := GenerateSlots(monday, ws, nil, 45)
	require.Equal(t, []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00",
		"15:00", "15:30", "16:00", "16:30", "17:00",
	}, slots)
}

func TestGenerateSlotsRangeShorterThanService(t *testing.T) {
	ws := mondayOnly(TimeRange{Start: "09:00", End: "09:20"})

	slots := GenerateSlots(monday, ws, nil, 30)
	require.Empty(t, slots)
}

func TestGenerateSlotsNonPositiveDuration(t *testing.T) {
	ws := mondayOnly(TimeRange{Start: "09:00", End: "18:00"})

	require.Empty(t, GenerateSlots(monday, ws, nil, 0))
	require.Empty(t, GenerateSlots(monday, ws, nil, -15))
}

func TestGenerateSlotsExceptionBlocksWholeDay(t *testing.T) {
	ws := mondayOnly(TimeRange{Start: "09:00", End: "18:00"})
	exceptions := []Exception{
		{
			StartDate: monday,
			EndDate:   monday.AddDate(0, 0, 4),
			Type:      ExceptionVacation,
		},
	}

	require.Empty(t, GenerateSlots(monday, ws, exceptions, 30))

	// The day after the exception ends is open again.
	after := monday.AddDate(0, 0, 7)
	require.NotEmpty(t, GenerateSlots(after, ws, exceptions, 30))
}

func TestGenerateSlotsExceptionWithTimeOfDay(t *testing.T) {
	// An exception starting mid-afternoon still blocks the whole
	// calendar day it touches.
	ws := mondayOnly(TimeRange{Start: "09:00", End: "18:00"})
	exceptions := []Exception{
		{
			StartDate: time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC),
			Type:      ExceptionUnavailable,
		},
	}

	require.Empty(t, GenerateSlots(monday, ws, exceptions, 30))
}

func TestCoversInterval(t *testing.T) {
	ws := mondayOnly(
		TimeRange{Start: "09:00", End: "13:00"},
		TimeRange{Start: "15:00", End: "18:00"},
	)

	at := func(h, m int) time.Time {
		return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
	}

	require.True(t, CoversInterval(ws, nil, at(9, 0), at(10, 0)))
	require.True(t, CoversInterval(ws, nil, at(12, 15), at(13, 0)))
	require.True(t, CoversInterval(ws, nil, at(17, 0), at(18, 0)))

	// Ends past the range.
	require.False(t, CoversInterval(ws, nil, at(12, 30), at(13, 30)))
	// Falls in the gap between ranges.
	require.False(t, CoversInterval(ws, nil, at(14, 0), at(14, 30)))
	// Starts before opening.
	require.False(t, CoversInterval(ws, nil, at(8, 30), at(9, 30)))
	// Zero-length interval.
	require.False(t, CoversInterval(ws, nil, at(9, 0), at(9, 0)))

	// Disabled day.
	tuesday := monday.AddDate(0, 0, 1)
	require.False(t, CoversInterval(ws, nil,
		tuesday.Add(9*time.Hour), tuesday.Add(10*time.Hour)))

	// Blocked day.
	exceptions := []Exception{{StartDate: monday, EndDate: monday, Type: ExceptionHoliday}}
	require.False(t, CoversInterval(ws, exceptions, at(9, 0), at(10, 0)))
}
