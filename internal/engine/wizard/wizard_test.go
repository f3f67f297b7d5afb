package wizard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/engine/availability"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

var presets = []types.TimeString{"09:00", "11:00", "13:30", "15:30"}

func jun(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func fullPackage() Options {
	return Options{
		DraftID:            "draft-1",
		ResourceID:         42,
		Entitlement:        domain.Entitlement{Nights: 3, RentalDays: 2, LessonHours: 4},
		Composition:        domain.PackageComposition{Accommodation: true, Rentals: true, Lessons: true},
		LessonBlockMinutes: 120,
		PresetStarts:       presets,
	}
}

func mustNew(t *testing.T, opts Options) Wizard {
	t.Helper()
	w, err := New(opts)
	require.NoError(t, err)
	return w
}

func TestNew_Steps(t *testing.T) {
	tests := []struct {
		name        string
		composition domain.PackageComposition
		entitlement domain.Entitlement
		want        []Step
	}{
		{
			name:        "all inclusive",
			composition: domain.PackageComposition{Accommodation: true, Rentals: true, Lessons: true},
			entitlement: domain.Entitlement{Nights: 3, RentalDays: 2, LessonHours: 4},
			want:        []Step{StepDates, StepRentals, StepLessons, StepPayment},
		},
		{
			name:        "accommodation only",
			composition: domain.PackageComposition{Accommodation: true},
			entitlement: domain.Entitlement{Nights: 2},
			want:        []Step{StepDates, StepPayment},
		},
		{
			name:        "lessons only",
			composition: domain.PackageComposition{Lessons: true},
			entitlement: domain.Entitlement{LessonHours: 6},
			want:        []Step{StepDates, StepLessons, StepPayment},
		},
		{
			name:        "rentals without rental days",
			composition: domain.PackageComposition{Accommodation: true, Rentals: true},
			entitlement: domain.Entitlement{Nights: 2},
			want:        []Step{StepDates, StepPayment},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustNew(t, Options{Composition: tt.composition, Entitlement: tt.entitlement})
			assert.Equal(t, tt.want, w.Steps())
			assert.Equal(t, StepDates, w.Current())
			assert.NotEmpty(t, w.Draft().ID, "draft id generated")
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{Composition: domain.PackageComposition{}})
	assert.ErrorIs(t, err, ErrEmptyComposition)

	_, err = New(Options{
		Composition: domain.PackageComposition{Accommodation: true},
		Entitlement: domain.Entitlement{Nights: -1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEntitlement)
}

func TestDatesStep(t *testing.T) {
	t.Run("stay required", func(t *testing.T) {
		w := mustNew(t, fullPackage())

		next, err := w.Next()
		require.ErrorIs(t, err, domain.ErrIncompleteStep)
		assert.Equal(t, StepDates, next.Current())
	})

	t.Run("invalid range", func(t *testing.T) {
		w := mustNew(t, fullPackage())

		_, err := w.SetStay(jun(10), jun(10))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("fixed nights must match exactly", func(t *testing.T) {
		opts := fullPackage()
		opts.Composition.FixedNights = 3
		w := mustNew(t, opts)

		w, err := w.SetStay(jun(10), jun(14))
		require.NoError(t, err)

		err = w.CanAdvance(StepDates)
		var stepErr *domain.IncompleteStepError
		require.True(t, errors.As(err, &stepErr))
		assert.Contains(t, stepErr.Reason, "exactly 3 nights")

		w, err = w.SetStay(jun(10), jun(13))
		require.NoError(t, err)
		assert.NoError(t, w.CanAdvance(StepDates))
	})

	t.Run("booked dates rejected", func(t *testing.T) {
		opts := fullPackage()
		opts.Snapshot = availability.FromIntervals([]domain.Interval{domain.MustInterval(jun(10), jun(14))})
		w := mustNew(t, opts)

		w, err := w.SetStay(jun(12), jun(15))
		require.NoError(t, err)
		assert.ErrorIs(t, w.CanAdvance(StepDates), domain.ErrIncompleteStep)

		w, err = w.SetStay(jun(14), jun(17))
		require.NoError(t, err)
		assert.NoError(t, w.CanAdvance(StepDates))
	})
}

func TestWithDefaultStay(t *testing.T) {
	opts := fullPackage()
	opts.Snapshot = availability.FromIntervals([]domain.Interval{domain.MustInterval(jun(10), jun(14))})
	w := mustNew(t, opts).WithDefaultStay(jun(11))

	require.NotNil(t, w.Draft().Stay)
	assert.Equal(t, domain.MustInterval(jun(14), jun(17)), *w.Draft().Stay)
	assert.False(t, w.NoAvailability())
	assert.Len(t, w.Draft().Lessons, 2)
	assert.Equal(t, 2, w.Draft().Rentals.Count())
}

func TestWithDefaultStay_NoAvailability(t *testing.T) {
	opts := fullPackage()
	opts.SearchWindowDays = 5
	opts.Snapshot = availability.FromIntervals([]domain.Interval{domain.MustInterval(jun(1), jun(30))})
	w := mustNew(t, opts).WithDefaultStay(jun(1))

	assert.True(t, w.NoAvailability())
	assert.Nil(t, w.Draft().Stay)
	assert.ErrorIs(t, w.CanAdvance(StepDates), domain.ErrIncompleteStep)
}

func TestRentalsStep(t *testing.T) {
	w := mustNew(t, fullPackage())
	w, err := w.SetStay(jun(10), jun(13))
	require.NoError(t, err)

	_, err = w.ToggleRental(0)
	assert.ErrorIs(t, err, ErrStepNotActive, "rental setter outside its step")

	w, err = w.Next()
	require.NoError(t, err)
	require.Equal(t, StepRentals, w.Current())

	// default selection already uses the whole entitlement
	same, err := w.ToggleRental(2)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, []bool{true, true, false}, same.Draft().Rentals.Selected())

	w, err = w.ToggleRental(0)
	require.NoError(t, err)
	w, err = w.ToggleRental(1)
	require.NoError(t, err)

	_, err = w.Next()
	assert.ErrorIs(t, err, domain.ErrIncompleteStep)

	w, err = w.ToggleRental(2)
	require.NoError(t, err)
	w, err = w.Next()
	require.NoError(t, err)
	assert.Equal(t, StepLessons, w.Current())
}

func TestLessonsStep_BlocksUntilAllScheduled(t *testing.T) {
	opts := fullPackage()
	opts.Entitlement.LessonHours = 5 // 3 blocks
	w := mustNew(t, opts)
	w, err := w.SetStay(jun(10), jun(13))
	require.NoError(t, err)
	w, err = w.Next()
	require.NoError(t, err)
	w, err = w.Next()
	require.NoError(t, err)
	require.Equal(t, StepLessons, w.Current())
	require.Equal(t, 3, w.TotalBlocks())

	w, err = w.AssignLesson(0, 7, "09:00")
	require.NoError(t, err)

	// a cleared block no longer counts as scheduled
	w, err = w.AssignLesson(1, 7, "11:00")
	require.NoError(t, err)
	w, err = w.UnassignLesson(1)
	require.NoError(t, err)

	assert.Equal(t, 1, w.ScheduledBlocks())
	assert.Equal(t, 2, w.RemainingBlocks())

	stuck, err := w.Next()
	var stepErr *domain.IncompleteStepError
	require.True(t, errors.As(err, &stepErr))
	assert.Contains(t, stepErr.Reason, "2 of 3")
	assert.Equal(t, StepLessons, stuck.Current())

	w, err = w.AssignLesson(1, 8, "11:00")
	require.NoError(t, err)
	w, err = w.AssignLesson(2, 7, "13:30")
	require.NoError(t, err)

	w, err = w.Next()
	require.NoError(t, err)
	assert.Equal(t, StepPayment, w.Current())
}

func TestLessonsStep_Validation(t *testing.T) {
	w := mustNew(t, fullPackage())
	w, err := w.SetStay(jun(10), jun(13))
	require.NoError(t, err)
	w, err = w.Next()
	require.NoError(t, err)
	w, err = w.Next()
	require.NoError(t, err)

	_, err = w.AssignLesson(0, 7, "10:00")
	assert.ErrorIs(t, err, ErrNotPresetStart)

	_, err = w.AssignLesson(5, 7, "09:00")
	assert.ErrorIs(t, err, ErrBlockOutOfRange)

	_, err = w.AssignLesson(0, 0, "09:00")
	assert.ErrorIs(t, err, ErrInvalidInstructor)

	_, err = w.AddLessonBlock(jun(14))
	assert.ErrorIs(t, err, ErrDateOutsideStay)

	// check-out day is a valid lesson day
	w, err = w.AddLessonBlock(jun(13))
	require.NoError(t, err)
	require.Len(t, w.Draft().Lessons, 3)

	w, err = w.AssignLesson(2, 7, "09:00")
	require.NoError(t, err)
	w, err = w.RemoveLessonBlock(2)
	require.NoError(t, err)
	assert.Len(t, w.Draft().Lessons, 2)

	w, err = w.AssignLesson(0, 7, "09:00")
	require.NoError(t, err)
	w, err = w.AddLessonBlock(jun(10))
	require.NoError(t, err)
	_, err = w.AssignLesson(2, 7, "09:00")
	assert.ErrorIs(t, err, ErrInstructorDoubleBook)
}

func TestLessonsStep_TooManyScheduled(t *testing.T) {
	w := mustNew(t, fullPackage())
	w, err := w.SetStay(jun(10), jun(13))
	require.NoError(t, err)
	w, _ = w.Next()
	w, _ = w.Next()

	w, err = w.AddLessonBlock(jun(12))
	require.NoError(t, err)
	for i, start := range []types.TimeString{"09:00", "11:00", "13:30"} {
		w, err = w.AssignLesson(i, 7, start)
		require.NoError(t, err)
	}

	_, err = w.Next()
	assert.ErrorIs(t, err, domain.ErrIncompleteStep)
	assert.Equal(t, 0, w.RemainingBlocks())
}

func TestPrevKeepsState(t *testing.T) {
	w := mustNew(t, fullPackage())
	w, err := w.SetStay(jun(10), jun(13))
	require.NoError(t, err)
	w, _ = w.Next()
	w, _ = w.Next()
	w, err = w.AssignLesson(0, 7, "09:00")
	require.NoError(t, err)

	back := w.Prev().Prev()
	assert.Equal(t, StepDates, back.Current())
	assert.Equal(t, StepDates, back.Prev().Current())

	forward, err := back.Next()
	require.NoError(t, err)
	forward, err = forward.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, forward.ScheduledBlocks(), "assignment survives going back and forth")
}

func TestSetStayResetsDownstream(t *testing.T) {
	w := mustNew(t, fullPackage())
	w, err := w.SetStay(jun(10), jun(13))
	require.NoError(t, err)
	w, _ = w.Next()
	w, err = w.ToggleRental(0)
	require.NoError(t, err)
	w, _ = w.Next()
	w, err = w.AssignLesson(0, 7, "09:00")
	require.NoError(t, err)

	w = w.Prev().Prev()

	same, err := w.SetStay(jun(10), jun(13))
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, same.Draft().Rentals.Selected(), "same range keeps choices")
	assert.Equal(t, 1, same.ScheduledBlocks())

	moved, err := w.SetStay(jun(20), jun(22))
	require.NoError(t, err)

	draft := moved.Draft()
	assert.Equal(t, []bool{true, true}, draft.Rentals.Selected())
	assert.Equal(t, 0, moved.ScheduledBlocks())
	for _, b := range draft.Lessons {
		assert.True(t, draft.Stay.Contains(b.Date) || b.Date.Equal(draft.Stay.End),
			"lesson date %s outside new stay", b.Date)
	}
	for _, d := range draft.Rentals.Dates(*draft.Stay) {
		assert.True(t, draft.Stay.Contains(d))
	}
}

func TestPaymentStep(t *testing.T) {
	w := mustNew(t, Options{
		ResourceID:  5,
		Composition: domain.PackageComposition{Accommodation: true},
		Entitlement: domain.Entitlement{Nights: 2},
	})
	w, err := w.SetStay(jun(10), jun(12))
	require.NoError(t, err)
	w, err = w.Next()
	require.NoError(t, err)
	require.Equal(t, StepPayment, w.Current())

	_, err = w.Payload()
	assert.ErrorIs(t, err, domain.ErrIncompleteStep)

	_, err = w.SetPaymentMethod("bitcoin")
	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)

	w, err = w.SetPaymentMethod(domain.PaymentCard)
	require.NoError(t, err)
	voucher := "SUMMER25"
	w, err = w.SetVoucher(&voucher)
	require.NoError(t, err)
	voucher = "changed"

	_, err = w.Next()
	assert.ErrorIs(t, err, ErrNoNextStep)

	payload, err := w.Payload()
	require.NoError(t, err)
	assert.Equal(t, int64(5), payload.ResourceID)
	assert.Equal(t, domain.MustInterval(jun(10), jun(12)), payload.DateRange)
	assert.Empty(t, payload.RentalDates)
	assert.Empty(t, payload.LessonBookings)
	require.NotNil(t, payload.VoucherID)
	assert.Equal(t, "SUMMER25", *payload.VoucherID)
}

func TestRestart(t *testing.T) {
	w := mustNew(t, Options{
		Composition:  domain.PackageComposition{Accommodation: true},
		Entitlement:  domain.Entitlement{Nights: 3},
		PresetStarts: presets,
	})
	w, err := w.SetStay(jun(10), jun(13))
	require.NoError(t, err)
	w, _ = w.Next()
	w, err = w.SetPaymentMethod(domain.PaymentCash)
	require.NoError(t, err)

	fresh := availability.FromIntervals([]domain.Interval{domain.MustInterval(jun(11), jun(12))})
	restarted := w.Restart(fresh)

	assert.Equal(t, StepDates, restarted.Current())
	assert.Equal(t, w.Draft().Entitlement, restarted.Draft().Entitlement)
	assert.Equal(t, w.Draft().ID, restarted.Draft().ID)
	assert.ErrorIs(t, restarted.CanAdvance(StepDates), domain.ErrIncompleteStep, "old stay conflicts with new snapshot")

	restarted, err = restarted.SetStay(jun(12), jun(15))
	require.NoError(t, err)
	_, err = restarted.Next()
	assert.NoError(t, err)
}

func TestImmutability(t *testing.T) {
	w := mustNew(t, fullPackage())
	w1, err := w.SetStay(jun(10), jun(13))
	require.NoError(t, err)

	assert.Nil(t, w.Draft().Stay, "receiver unchanged")

	w2, _ := w1.Next()
	w3, err := w2.ToggleRental(0)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, w2.Draft().Rentals.Selected())
	assert.Equal(t, []bool{false, true, false}, w3.Draft().Rentals.Selected())

	w4, _ := w3.Next()
	w5, err := w4.AssignLesson(0, 7, "09:00")
	require.NoError(t, err)
	assert.Equal(t, 0, w4.ScheduledBlocks())
	assert.Equal(t, 1, w5.ScheduledBlocks())
}

func TestDatesStep_WithoutAccommodationIgnoresUnitBookings(t *testing.T) {
	booked := availability.FromIntervals([]domain.Interval{domain.MustInterval(jun(10), jun(14))})

	tests := []struct {
		name        string
		composition domain.PackageComposition
		entitlement domain.Entitlement
		wantErr     bool
	}{
		{
			name:        "lessons only",
			composition: domain.PackageComposition{Lessons: true},
			entitlement: domain.Entitlement{LessonHours: 2},
		},
		{
			name:        "rentals only",
			composition: domain.PackageComposition{Rentals: true},
			entitlement: domain.Entitlement{RentalDays: 1},
		},
		{
			name:        "accommodation",
			composition: domain.PackageComposition{Accommodation: true, Lessons: true},
			entitlement: domain.Entitlement{Nights: 1, LessonHours: 2},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustNew(t, Options{
				DraftID:            "draft-1",
				ResourceID:         42,
				Entitlement:        tt.entitlement,
				Composition:        tt.composition,
				LessonBlockMinutes: 120,
				PresetStarts:       presets,
				Snapshot:           booked,
			})

			w, err := w.SetStay(jun(11), jun(12))
			require.NoError(t, err)

			err = w.CanAdvance(StepDates)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrIncompleteStep)
				return
			}
			require.NoError(t, err)

			next, err := w.Next()
			require.NoError(t, err)
			assert.NotEqual(t, StepDates, next.Current())
		})
	}
}

func TestWithDefaultStay_WithoutAccommodationStartsToday(t *testing.T) {
	w := mustNew(t, Options{
		DraftID:     "draft-1",
		ResourceID:  42,
		Entitlement: domain.Entitlement{Nights: 2, RentalDays: 2},
		Composition: domain.PackageComposition{Rentals: true},
		Snapshot:    availability.FromIntervals([]domain.Interval{domain.MustInterval(jun(1), jun(20))}),
	}).WithDefaultStay(jun(5))

	require.NotNil(t, w.Draft().Stay)
	assert.Equal(t, domain.MustInterval(jun(5), jun(7)), *w.Draft().Stay)
	assert.False(t, w.NoAvailability())
}
