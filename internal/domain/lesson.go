package domain

import (
	"time"

	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

// LessonBlock is one fixed-length lesson on a date.
// A block counts as scheduled only once both instructor and start time are set.
type LessonBlock struct {
	Date            time.Time
	InstructorID    int64 // 0 = not assigned
	StartTime       types.TimeString
	DurationMinutes int
}

// IsScheduled returns true if the block has an instructor and a start time
func (b LessonBlock) IsScheduled() bool {
	return b.InstructorID > 0 && !b.StartTime.IsZero()
}

// Unassigned returns a copy of the block with instructor and start time cleared
func (b LessonBlock) Unassigned() LessonBlock {
	b.InstructorID = 0
	b.StartTime = ""
	return b
}

// Span returns the block as minutes since midnight, [start, end).
func (b LessonBlock) Span() (start, end int) {
	start = b.StartTime.Minutes()
	return start, start + b.DurationMinutes
}

// Period returns the block as wall-clock times on its date, [start, end).
func (b LessonBlock) Period() (time.Time, time.Time) {
	y, m, d := b.Date.Date()
	start, end := b.Span()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, b.Date.Location())
	return midnight.Add(time.Duration(start) * time.Minute), midnight.Add(time.Duration(end) * time.Minute)
}

// Conflicts reports whether both blocks need the same instructor at overlapping times
func (b LessonBlock) Conflicts(other LessonBlock) bool {
	if b.InstructorID == 0 || b.InstructorID != other.InstructorID || !IsSameDay(b.Date, other.Date) {
		return false
	}
	bStart, bEnd := b.Span()
	oStart, oEnd := other.Span()
	return bStart < oEnd && oStart < bEnd
}
