package domain

import "github.com/m04kA/SMC-SchoolBooking/pkg/types"

// SlotStatus is the state of one fine-grained time-of-day marker
type SlotStatus string

const (
	SlotFree     SlotStatus = "free"
	SlotTaken    SlotStatus = "taken"
	SlotBlackout SlotStatus = "blackout"
)

// IsValid reports whether s is a known status
func (s SlotStatus) IsValid() bool {
	return s == SlotFree || s == SlotTaken || s == SlotBlackout
}

// DaySlot is one marker of a DaySlotMap
type DaySlot struct {
	Time   types.TimeString
	Status SlotStatus
}

// DaySlotMap maps fixed-increment time-of-day labels of a single day to a status.
// Keys are unique and kept in chronological order.
type DaySlotMap struct {
	slots []DaySlot
	index map[types.TimeString]int
}

// NewDaySlotMap builds a map from markers, sorting them and rejecting duplicate
// keys, malformed times and unknown statuses.
func NewDaySlotMap(slots []DaySlot) (DaySlotMap, error) {
	sorted := make([]DaySlot, 0, len(slots))
	index := make(map[types.TimeString]int, len(slots))

	for _, s := range slots {
		if err := s.Time.Validate(); err != nil {
			return DaySlotMap{}, err
		}
		if !s.Status.IsValid() {
			return DaySlotMap{}, ErrUnknownSlotStatus
		}
		if _, dup := index[s.Time]; dup {
			return DaySlotMap{}, ErrDuplicateSlot
		}
		index[s.Time] = -1
		sorted = append(sorted, s)
	}

	// insertion sort: maps are a few dozen entries per day
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Time.IsBefore(sorted[j-1].Time); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	for i, s := range sorted {
		index[s.Time] = i
	}

	return DaySlotMap{slots: sorted, index: index}, nil
}

// Status returns the status at t and whether the key exists
func (m DaySlotMap) Status(t types.TimeString) (SlotStatus, bool) {
	i, ok := m.index[t]
	if !ok {
		return "", false
	}
	return m.slots[i].Status, true
}

// Slots returns a copy of the markers in chronological order
func (m DaySlotMap) Slots() []DaySlot {
	out := make([]DaySlot, len(m.slots))
	copy(out, m.slots)
	return out
}

// Len returns the number of markers
func (m DaySlotMap) Len() int {
	return len(m.slots)
}

// WithTaken returns a copy of the map where free markers covered by any of the
// blocks are marked taken. Blackout markers are kept as they are.
func (m DaySlotMap) WithTaken(blocks []LessonBlock) DaySlotMap {
	out := DaySlotMap{slots: m.Slots(), index: m.index}
	for i, s := range out.slots {
		if s.Status != SlotFree {
			continue
		}
		at := s.Time.Minutes()
		for _, b := range blocks {
			start, end := b.Span()
			if at >= start && at < end {
				out.slots[i].Status = SlotTaken
				break
			}
		}
	}
	return out
}

// StartOption is a lesson start that fits a whole block
type StartOption struct {
	Start types.TimeString
	End   types.TimeString
}
