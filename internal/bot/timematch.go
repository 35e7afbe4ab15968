package bot

import (
	"time"

	"medtrack/reminder-service/pkg/helpers"
)

// DefaultTolerance matches the scheduler's tick interval: a reminder fires
// when the local wall clock is within one minute of the target.
const DefaultTolerance = time.Minute

// MatchesTimeOfDay reports whether the current instant, viewed in the given
// location, falls within tolerance of the target "HH:MM" wall-clock time.
// The distance wraps across midnight, so 23:59 and 00:00 are one minute
// apart. The time-of-day token and the location are validated at
// configuration time; an unparsable token never matches.
func MatchesTimeOfDay(target string, loc *time.Location, now time.Time, tolerance time.Duration) bool {
	hour, minute, ok := helpers.ParseTimeOfDay(target)
	if !ok {
		return false
	}

	local := now.In(loc)
	localMinutes := local.Hour()*60 + local.Minute()
	targetMinutes := hour*60 + minute

	diff := localMinutes - targetMinutes
	if diff < 0 {
		diff = -diff
	}
	// Wrap across midnight
	if diff > 12*60 {
		diff = 24*60 - diff
	}

	return time.Duration(diff)*time.Minute <= tolerance
}

// SameLocalDay reports whether two instants fall on the same calendar day
// in the given location. Used as the per-day send dedup key.
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	al := a.In(loc)
	bl := b.In(loc)
	return al.Year() == bl.Year() && al.YearDay() == bl.YearDay()
}
