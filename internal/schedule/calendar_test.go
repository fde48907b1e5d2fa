package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToCalendarDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 2025-06-03 01:30 UTC is still 2025-06-02 in Sao Paulo (UTC-3).
	ts := time.Date(2025, 6, 3, 1, 30, 0, 0, time.UTC)
	day := ToCalendarDay(ts, loc)

	require.Equal(t, 2025, day.Year())
	require.Equal(t, time.June, day.Month())
	require.Equal(t, 2, day.Day())
	require.Equal(t, 0, day.Hour())
	require.Equal(t, loc, day.Location())
}

func TestIsBlockedInclusiveBounds(t *testing.T) {
	loc := time.UTC
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	end := time.Date(2025, 6, 6, 0, 0, 0, 0, loc)
	exceptions := []Exception{{StartDate: start, EndDate: end, Type: ExceptionVacation}}

	require.True(t, IsBlocked(exceptions, start, loc))
	require.True(t, IsBlocked(exceptions, end, loc))
	require.True(t, IsBlocked(exceptions, start.AddDate(0, 0, 2), loc))

	require.False(t, IsBlocked(exceptions, start.AddDate(0, 0, -1), loc))
	require.False(t, IsBlocked(exceptions, end.AddDate(0, 0, 1), loc))
}

func TestIsBlockedNoExceptions(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	require.False(t, IsBlocked(nil, day, time.UTC))
}
