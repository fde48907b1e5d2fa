package schedule

import "time"

// ToCalendarDay truncates a timestamp to midnight of its calendar day
// in the given location. Every date-granular comparison in the system
// goes through here so the day-boundary policy stays in one place.
func ToCalendarDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// IsBlocked reports whether the given date falls inside any exception
// range. Bounds are inclusive and compared at day granularity: an
// exception touching any part of a calendar day blocks the whole day.
func IsBlocked(exceptions []Exception, date time.Time, loc *time.Location) bool {
	day := ToCalendarDay(date, loc)
	for _, ex := range exceptions {
		start := ToCalendarDay(ex.StartDate, loc)
		end := ToCalendarDay(ex.EndDate, loc)
		if !day.Before(start) && !day.After(end) {
			return true
		}
	}
	return false
}
