package schedule

import (
	"fmt"
	"time"
)

// ===============================
// Weekly schedule value types
// ===============================

// TimeRange is a same-day wall-clock window, "HH:MM", start < end.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule is one weekday's availability. When Enabled is false the
// ranges are kept but ignored by slot generation.
type DaySchedule struct {
	Enabled bool        `json:"is_enabled"`
	Ranges  []TimeRange `json:"slots"`
}

// WeeklySchedule always has exactly 7 entries, indexed by
// time.Weekday (0 = Sunday .. 6 = Saturday). A missing day is not a
// representable state.
type WeeklySchedule [7]DaySchedule

// ===============================
// Exceptions
// ===============================

type ExceptionType string

const (
	ExceptionVacation    ExceptionType = "vacation"
	ExceptionHoliday     ExceptionType = "holiday"
	ExceptionUnavailable ExceptionType = "unavailable"
)

// Exception blocks every calendar day it touches, whole days only.
// Time-of-day on the bounds is normalized away.
type Exception struct {
	ID        uint          `json:"id"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Type      ExceptionType `json:"type"`
	Reason    string        `json:"reason,omitempty"`
}

// ===============================
// Validation
// ===============================

// clockMinutes parses "HH:MM" into minutes from midnight.
func clockMinutes(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", hm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Validate enforces the write-time invariants: parseable bounds,
// start < end, and no overlap between ranges of the same day (ranges
// must be stored in ascending order).
func (ws WeeklySchedule) Validate() error {
	for weekday, day := range ws {
		prevEnd := -1
		for i, r := range day.Ranges {
			start, err := clockMinutes(r.Start)
			if err != nil {
				return fmt.Errorf("weekday %d range %d: %w", weekday, i, err)
			}
			end, err := clockMinutes(r.End)
			if err != nil {
				return fmt.Errorf("weekday %d range %d: %w", weekday, i, err)
			}
			if start >= end {
				return fmt.Errorf("weekday %d range %d: start %s must be before end %s", weekday, i, r.Start, r.End)
			}
			if start < prevEnd {
				return fmt.Errorf("weekday %d range %d: overlaps previous range", weekday, i)
			}
			prevEnd = end
		}
	}
	return nil
}

func ValidateExceptions(exceptions []Exception) error {
	for i, ex := range exceptions {
		if ex.EndDate.Before(ex.StartDate) {
			return fmt.Errorf("exception %d: end date before start date", i)
		}
		switch ex.Type {
		case ExceptionVacation, ExceptionHoliday, ExceptionUnavailable:
		default:
			return fmt.Errorf("exception %d: unknown type %q", i, ex.Type)
		}
	}
	return nil
}
