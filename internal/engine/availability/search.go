package availability

import (
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

// FirstAvailable finds the earliest start in [today, today+windowDays) such that
// [start, start+nights) is free. Candidates are whole days in today's location.
//
// When no start qualifies it returns (today, false). The date is only a placeholder:
// callers must surface a "no availability" state instead of booking it.
func FirstAvailable(index *Index, today time.Time, nights, windowDays int) (time.Time, bool) {
	today = domain.DateOnly(today)
	if windowDays <= 0 {
		windowDays = domain.DefaultSearchWindowDays
	}
	if nights <= 0 {
		return today, true
	}

	candidate := today
	i := index.firstEndingAfter(candidate)
	for domain.DaysBetween(today, candidate) < windowDays {
		if i >= len(index.merged) {
			return candidate, true
		}

		stayEnd := candidate.AddDate(0, 0, nights)
		blocker := index.merged[i]
		if !blocker.Start.Before(stayEnd) {
			return candidate, true
		}

		// the stay hits blocker: the next possible start is the day blocker ends
		next := ceilDay(blocker.End, today.Location())
		if !next.After(candidate) {
			next = candidate.AddDate(0, 0, 1)
		}
		candidate = next
		for i < len(index.merged) && !index.merged[i].End.After(candidate) {
			i++
		}
	}

	return today, false
}

// ceilDay returns midnight of t's calendar date in loc, or of the next date when t
// is not at midnight.
func ceilDay(t time.Time, loc *time.Location) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
