package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntitlementValidate(t *testing.T) {
	tests := []struct {
		name    string
		e       Entitlement
		wantErr bool
	}{
		{"zero", Entitlement{}, false},
		{"full package", Entitlement{Nights: 3, RentalDays: 2, LessonHours: 4}, false},
		{"negative nights", Entitlement{Nights: -1}, true},
		{"negative rental days", Entitlement{RentalDays: -2}, true},
		{"negative hours", Entitlement{LessonHours: -0.5}, true},
		{"NaN hours", Entitlement{LessonHours: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.e.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEntitlement)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLessonBlockIsScheduled(t *testing.T) {
	b := LessonBlock{Date: day(time.June, 10), DurationMinutes: 120}
	assert.False(t, b.IsScheduled())

	b.InstructorID = 7
	assert.False(t, b.IsScheduled(), "instructor without start time is partial")

	b.StartTime = "09:00"
	assert.True(t, b.IsScheduled())

	cleared := b.Unassigned()
	assert.False(t, cleared.IsScheduled())
	assert.Equal(t, b.Date, cleared.Date)
	assert.True(t, b.IsScheduled(), "original value untouched")
}

func TestReservationStatus(t *testing.T) {
	r := &Reservation{Status: StatusConfirmed}
	assert.True(t, r.IsActive())
	assert.True(t, r.CanBeCancelled())

	r.Status = StatusCancelledByUser
	assert.False(t, r.IsActive())
	assert.True(t, r.IsCancelled())
	assert.False(t, r.CanBeCancelled())

	r.Status = StatusCompleted
	assert.False(t, r.IsActive())
}

func TestReservationOccupiesResource(t *testing.T) {
	r := &Reservation{Status: StatusPending}
	assert.True(t, r.OccupiesResource())

	r.NoAccommodation = true
	assert.False(t, r.OccupiesResource(), "lessons-only booking leaves the unit free")

	r.NoAccommodation = false
	r.Status = StatusCancelledBySchool
	assert.False(t, r.OccupiesResource())
}

func TestLessonBlockConflicts(t *testing.T) {
	base := LessonBlock{Date: day(time.June, 4), InstructorID: 11, StartTime: "09:00", DurationMinutes: 120}

	tests := []struct {
		name  string
		other LessonBlock
		want  bool
	}{
		{"same slot", base, true},
		{"partial overlap", LessonBlock{Date: day(time.June, 4), InstructorID: 11, StartTime: "10:30", DurationMinutes: 120}, true},
		{"back to back", LessonBlock{Date: day(time.June, 4), InstructorID: 11, StartTime: "11:00", DurationMinutes: 120}, false},
		{"other instructor", LessonBlock{Date: day(time.June, 4), InstructorID: 12, StartTime: "09:00", DurationMinutes: 120}, false},
		{"other day", LessonBlock{Date: day(time.June, 5), InstructorID: 11, StartTime: "09:00", DurationMinutes: 120}, false},
		{"unassigned", LessonBlock{Date: day(time.June, 4), StartTime: "09:00", DurationMinutes: 120}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Conflicts(tt.other))
			assert.Equal(t, tt.want, tt.other.Conflicts(base))
		})
	}
}

func TestLessonBlockPeriod(t *testing.T) {
	b := LessonBlock{Date: day(time.June, 4), InstructorID: 11, StartTime: "13:30", DurationMinutes: 120}
	start, end := b.Period()
	assert.Equal(t, time.Date(2025, time.June, 4, 13, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.June, 4, 15, 30, 0, 0, time.UTC), end)
}
