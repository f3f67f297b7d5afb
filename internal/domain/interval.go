package domain

import "time"

// Interval is a half-open date or time range [Start, End).
// Start < End is enforced by NewInterval; use the constructors rather than a literal.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval, rejecting empty and inverted ranges.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, &InvalidRangeError{Start: start, End: end}
	}
	return Interval{Start: start, End: end}, nil
}

// MustInterval is NewInterval for values known to be valid; it panics otherwise.
func MustInterval(start, end time.Time) Interval {
	iv, err := NewInterval(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// StayInterval builds the night range [checkIn, checkIn+nights) at day granularity.
func StayInterval(checkIn time.Time, nights int) (Interval, error) {
	start := DateOnly(checkIn)
	return NewInterval(start, start.AddDate(0, 0, nights))
}

// Overlaps reports whether a and b share at least one instant. Symmetric.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether point lies in [a.Start, a.End).
func Contains(a Interval, point time.Time) bool {
	return !point.Before(a.Start) && point.Before(a.End)
}

// Overlaps is the method form of the package-level Overlaps.
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i, other)
}

// Contains is the method form of the package-level Contains.
func (i Interval) Contains(point time.Time) bool {
	return Contains(i, point)
}

// Nights returns the number of whole days covered by the interval.
func (i Interval) Nights() int {
	return DaysBetween(i.Start, i.End)
}

// Days lists the calendar days in [Start, End).
func (i Interval) Days() []time.Time {
	n := i.Nights()
	days := make([]time.Time, 0, n)
	for d := 0; d < n; d++ {
		days = append(days, DateOnly(i.Start).AddDate(0, 0, d))
	}
	return days
}

// DaysInclusive lists the calendar days in [Start, End], check-out day included.
// Lessons may be taken on travel days, so lesson planning uses this form.
func (i Interval) DaysInclusive() []time.Time {
	return append(i.Days(), DateOnly(i.End))
}

// Equal reports whether both bounds are the same instants.
func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

// DateOnly truncates t to midnight in t's location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a to b (negative if b is earlier).
// Calendar arithmetic keeps DST days at a count of one.
func DaysBetween(a, b time.Time) int {
	a, b = DateOnly(a), DateOnly(b)
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// IsSameDay reports whether two instants fall on the same calendar date.
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateIn returns midnight of t's calendar date in loc. Dates read from storage come back
// in UTC and are moved to the school's location before any comparison.
func DateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// IntervalIn moves both bounds of a day-granular interval to loc
func IntervalIn(i Interval, loc *time.Location) Interval {
	return Interval{Start: DateIn(i.Start, loc), End: DateIn(i.End, loc)}
}
