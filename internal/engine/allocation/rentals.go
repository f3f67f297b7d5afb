// Package allocation spreads a package entitlement over a chosen stay.
package allocation

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

var ErrDayOutOfRange = errors.New("allocation: day index out of range")

const resourceRentalDays = "rental_days"

// RentalSelection marks which days of a stay include an equipment rental.
// Position i is the i-th night of the stay; at most Limit days may be selected.
type RentalSelection struct {
	selected []bool
	limit    int
}

// NewRentalSelection selects the first min(rentalDays, days) days by default
func NewRentalSelection(days, rentalDays int) RentalSelection {
	if days < 0 {
		days = 0
	}
	if rentalDays < 0 {
		rentalDays = 0
	}

	selected := make([]bool, days)
	for i := 0; i < days && i < rentalDays; i++ {
		selected[i] = true
	}
	return RentalSelection{selected: selected, limit: rentalDays}
}

// Toggle flips day i and returns the new selection.
// Turning a day off always succeeds. Turning one on at the cap returns the selection
// unchanged together with a *domain.CapacityExceededError.
func (s RentalSelection) Toggle(i int) (RentalSelection, error) {
	if i < 0 || i >= len(s.selected) {
		return s, fmt.Errorf("%w: %d not in [0, %d)", ErrDayOutOfRange, i, len(s.selected))
	}

	if !s.selected[i] && s.Count() >= s.limit {
		return s, &domain.CapacityExceededError{Resource: resourceRentalDays, Limit: s.limit}
	}

	next := s.clone()
	next.selected[i] = !next.selected[i]
	return next, nil
}

// IsSelected reports whether day i is selected
func (s RentalSelection) IsSelected(i int) bool {
	return i >= 0 && i < len(s.selected) && s.selected[i]
}

// Count returns the number of selected days
func (s RentalSelection) Count() int {
	n := 0
	for _, v := range s.selected {
		if v {
			n++
		}
	}
	return n
}

// Len returns the number of days the selection is aligned with
func (s RentalSelection) Len() int {
	return len(s.selected)
}

// Limit returns the entitlement cap
func (s RentalSelection) Limit() int {
	return s.limit
}

// Selected returns a copy of the per-day flags
func (s RentalSelection) Selected() []bool {
	out := make([]bool, len(s.selected))
	copy(out, s.selected)
	return out
}

// Dates maps the selected positions onto the nights of stay
func (s RentalSelection) Dates(stay domain.Interval) []time.Time {
	days := stay.Days()
	dates := make([]time.Time, 0, s.Count())
	for i, v := range s.selected {
		if v && i < len(days) {
			dates = append(dates, days[i])
		}
	}
	return dates
}

func (s RentalSelection) clone() RentalSelection {
	return RentalSelection{selected: s.Selected(), limit: s.limit}
}
