package schedule

import (
	"fmt"
	"time"
)

// StepMinutes is the fixed slot-generation step. It is deliberately
// independent of service duration: every service, whatever its
// length, is offered on the same half-hour grid.
const StepMinutes = 30

// GenerateSlots returns the offerable start times ("HH:MM", in stored
// range order) for one calendar date. Pure function of its inputs: it
// never consults the clock, so filtering already-elapsed times on the
// current date is the caller's concern. The date's location decides
// where day boundaries fall for the exception check.
func GenerateSlots(
	date time.Time,
	ws WeeklySchedule,
	exceptions []Exception,
	durationMin int,
) []string {
	if durationMin <= 0 {
		return nil
	}

	day := ws[int(date.Weekday())]
	if !day.Enabled {
		return nil
	}

	// An exception covering any part of this calendar day blocks all
	// of it, whichever range would otherwise apply.
	if IsBlocked(exceptions, date, date.Location()) {
		return nil
	}

	var slots []string
	for _, r := range day.Ranges {
		start, err := clockMinutes(r.Start)
		if err != nil {
			continue
		}
		end, err := clockMinutes(r.End)
		if err != nil {
			continue
		}

		// A range shorter than the service contributes nothing.
		for cur := start; cur+durationMin <= end; cur += StepMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", cur/60, cur%60))
		}
	}

	return slots
}
