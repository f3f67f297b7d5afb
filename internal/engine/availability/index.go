// Package availability answers "is this day / range free" over a snapshot of
// committed reservations for one resource.
package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

// Index is an immutable set of occupied intervals, sorted by start and merged.
// A changed reservation set produces a new Index.
type Index struct {
	merged []domain.Interval
}

// Build creates an index from reservations, skipping cancelled and completed ones
// and bookings that do not occupy the resource.
func Build(reservations []domain.Reservation) *Index {
	intervals := make([]domain.Interval, 0, len(reservations))
	for i := range reservations {
		if !reservations[i].OccupiesResource() {
			continue
		}
		intervals = append(intervals, reservations[i].Stay)
	}
	return FromIntervals(intervals)
}

// FromIntervals creates an index from already-filtered intervals.
func FromIntervals(intervals []domain.Interval) *Index {
	sorted := make([]domain.Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]domain.Interval, 0, len(sorted))
	for _, iv := range sorted {
		if n := len(merged); n > 0 && !iv.Start.After(merged[n-1].End) {
			// touching or overlapping: extend the last one
			if iv.End.After(merged[n-1].End) {
				merged[n-1].End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	return &Index{merged: merged}
}

// IsDayBooked reports whether day falls inside any occupied interval.
// It is meant for calendar cell styling; validate a whole stay with RangeOverlaps.
func (x *Index) IsDayBooked(day time.Time) bool {
	d := domain.DateOnly(day)
	i := x.firstEndingAfter(d)
	return i < len(x.merged) && x.merged[i].Contains(d)
}

// RangeOverlaps reports whether [start, start+nights) overlaps any occupied interval.
// An empty range (nights <= 0) never overlaps.
func (x *Index) RangeOverlaps(start time.Time, nights int) bool {
	if nights <= 0 {
		return false
	}
	stay, err := domain.StayInterval(start, nights)
	if err != nil {
		return false
	}
	return x.Overlaps(stay)
}

// Overlaps reports whether iv overlaps any occupied interval.
func (x *Index) Overlaps(iv domain.Interval) bool {
	i := x.firstEndingAfter(iv.Start)
	return i < len(x.merged) && x.merged[i].Start.Before(iv.End)
}

// BookedDays lists the booked calendar days in [from, to).
func (x *Index) BookedDays(from, to time.Time) []time.Time {
	from = domain.DateOnly(from)
	n := domain.DaysBetween(from, to)

	booked := make([]time.Time, 0)
	for d := 0; d < n; d++ {
		current := from.AddDate(0, 0, d)
		if x.IsDayBooked(current) {
			booked = append(booked, current)
		}
	}
	return booked
}

// Intervals returns a copy of the merged occupied intervals in ascending order.
func (x *Index) Intervals() []domain.Interval {
	out := make([]domain.Interval, len(x.merged))
	copy(out, x.merged)
	return out
}

// Len returns the number of merged intervals
func (x *Index) Len() int {
	return len(x.merged)
}

// firstEndingAfter returns the position of the first merged interval whose end is after t
func (x *Index) firstEndingAfter(t time.Time) int {
	return sort.Search(len(x.merged), func(i int) bool {
		return x.merged[i].End.After(t)
	})
}
