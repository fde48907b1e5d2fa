package schedule

import "time"

// CoversInterval reports whether [start, end) lies entirely inside
// one enabled range of the weekly schedule on start's calendar day,
// with no exception blocking that day. Used by the booking writer to
// reject intervals the schedule never offered.
func CoversInterval(ws WeeklySchedule, exceptions []Exception, start, end time.Time) bool {
	if !end.After(start) {
		return false
	}

	loc := start.Location()
	if IsBlocked(exceptions, start, loc) {
		return false
	}

	day := ws[int(start.In(loc).Weekday())]
	if !day.Enabled {
		return false
	}

	local := start.In(loc)
	s := local.Hour()*60 + local.Minute()
	e := s + int(end.Sub(start).Minutes())
	if e > 24*60 {
		return false
	}

	for _, r := range day.Ranges {
		rs, err := clockMinutes(r.Start)
		if err != nil {
			continue
		}
		re, err := clockMinutes(r.End)
		if err != nil {
			continue
		}
		if rs <= s && e <= re {
			return true
		}
	}
	return false
}
