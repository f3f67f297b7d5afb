// Package wizard sequences the booking steps and assembles the submission payload.
//
// Every transition returns a new Wizard; the receiver is never modified, so a caller
// may keep old values around for undo or compare snapshots freely.
package wizard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/engine/allocation"
	"github.com/m04kA/SMC-SchoolBooking/internal/engine/availability"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

// Options configure a new wizard
type Options struct {
	DraftID            string // generated when empty
	ResourceID         int64
	Entitlement        domain.Entitlement
	Composition        domain.PackageComposition
	LessonBlockMinutes int
	PresetStarts       []types.TimeString
	Snapshot           *availability.Index // nil means no reservations known
	SearchWindowDays   int
}

// Draft is the state accumulated by the wizard
type Draft struct {
	ID            string
	ResourceID    int64
	Entitlement   domain.Entitlement
	Composition   domain.PackageComposition
	Stay          *domain.Interval
	Rentals       allocation.RentalSelection
	Lessons       []domain.LessonBlock
	PaymentMethod string
	VoucherID     *string
}

// Wizard is an immutable booking wizard state
type Wizard struct {
	draft          Draft
	steps          []Step
	current        int
	totalBlocks    int
	blockMinutes   int
	presetStarts   []types.TimeString
	snapshot       *availability.Index
	windowDays     int
	noAvailability bool
}

// New opens a wizard at the dates step with nothing selected
func New(opts Options) (Wizard, error) {
	if err := opts.Entitlement.Validate(); err != nil {
		return Wizard{}, err
	}
	if opts.Composition.IsEmpty() {
		return Wizard{}, ErrEmptyComposition
	}

	blockMinutes := opts.LessonBlockMinutes
	if blockMinutes <= 0 {
		blockMinutes = domain.DefaultLessonBlockMinutes
	}
	totalBlocks := 0
	if opts.Composition.Lessons {
		totalBlocks = allocation.TotalBlocks(opts.Entitlement.LessonHours, float64(blockMinutes)/60)
	}

	id := opts.DraftID
	if id == "" {
		id = uuid.NewString()
	}
	snapshot := opts.Snapshot
	if snapshot == nil {
		snapshot = availability.Build(nil)
	}
	presets := make([]types.TimeString, len(opts.PresetStarts))
	copy(presets, opts.PresetStarts)

	return Wizard{
		draft: Draft{
			ID:          id,
			ResourceID:  opts.ResourceID,
			Entitlement: opts.Entitlement,
			Composition: opts.Composition,
			Rentals:     allocation.NewRentalSelection(0, opts.Entitlement.RentalDays),
			Lessons:     []domain.LessonBlock{},
		},
		steps:        buildSteps(opts.Composition, opts.Entitlement, totalBlocks),
		totalBlocks:  totalBlocks,
		blockMinutes: blockMinutes,
		presetStarts: presets,
		snapshot:     snapshot,
		windowDays:   opts.SearchWindowDays,
	}, nil
}

// WithDefaultStay preselects the first available stay of the package length starting
// from today. When the snapshot has no room in the search window the stay stays empty
// and NoAvailability reports true.
func (w Wizard) WithDefaultStay(today time.Time) Wizard {
	nights := w.requiredNights()
	if nights <= 0 {
		return w
	}

	start, ok := availability.FirstAvailable(w.occupancy(), today, nights, w.windowDays)
	if !ok {
		next := w.clone()
		next.noAvailability = true
		return next
	}

	stay := domain.MustInterval(start, start.AddDate(0, 0, nights))
	next := w.withStay(stay)
	next.noAvailability = false
	return next
}

// Steps returns the step sequence for this package
func (w Wizard) Steps() []Step {
	out := make([]Step, len(w.steps))
	copy(out, w.steps)
	return out
}

// Current returns the active step
func (w Wizard) Current() Step {
	return w.steps[w.current]
}

// Draft returns a copy of the accumulated state
func (w Wizard) Draft() Draft {
	return w.clone().draft
}

// TotalBlocks returns how many lesson blocks the entitlement grants
func (w Wizard) TotalBlocks() int {
	return w.totalBlocks
}

// NoAvailability reports that the default stay search found nothing
func (w Wizard) NoAvailability() bool {
	return w.noAvailability
}

// ScheduledBlocks counts lesson blocks that have an instructor and a start time
func (w Wizard) ScheduledBlocks() int {
	n := 0
	for _, b := range w.draft.Lessons {
		if b.IsScheduled() {
			n++
		}
	}
	return n
}

// RemainingBlocks returns how many more blocks need scheduling
func (w Wizard) RemainingBlocks() int {
	if r := w.totalBlocks - w.ScheduledBlocks(); r > 0 {
		return r
	}
	return 0
}

// CanAdvance checks whether step is complete. It returns *domain.IncompleteStepError
// with a human readable reason otherwise.
func (w Wizard) CanAdvance(step Step) error {
	reason := w.incompleteReason(step)
	if reason == "" {
		return nil
	}
	return &domain.IncompleteStepError{Step: string(step), Reason: reason}
}

func (w Wizard) incompleteReason(step Step) string {
	switch step {
	case StepDates:
		stay := w.draft.Stay
		if stay == nil {
			return "check-in and check-out dates are not selected"
		}
		if fixed := w.draft.Composition.FixedNights; fixed > 0 && stay.Nights() != fixed {
			return fmt.Sprintf("package requires exactly %d nights, selected %d", fixed, stay.Nights())
		}
		if w.occupancy().Overlaps(*stay) {
			return "selected dates are already booked"
		}
	case StepRentals:
		if w.draft.Rentals.Count() == 0 {
			return "select at least one rental day"
		}
	case StepLessons:
		scheduled := w.ScheduledBlocks()
		if scheduled < w.totalBlocks {
			return fmt.Sprintf("%d of %d lesson blocks still need an instructor and a start time",
				w.totalBlocks-scheduled, w.totalBlocks)
		}
		if scheduled > w.totalBlocks {
			return fmt.Sprintf("%d lesson blocks scheduled but the package includes %d",
				scheduled, w.totalBlocks)
		}
	case StepPayment:
		if w.draft.PaymentMethod == "" {
			return "payment method is not selected"
		}
	default:
		return fmt.Sprintf("unknown step %q", step)
	}
	return ""
}

// Next moves forward when the current step is complete.
// On failure the returned wizard equals the receiver.
func (w Wizard) Next() (Wizard, error) {
	if err := w.CanAdvance(w.Current()); err != nil {
		return w, err
	}
	if w.current == len(w.steps)-1 {
		return w, ErrNoNextStep
	}

	next := w.clone()
	next.current++
	return next, nil
}

// Prev moves one step back keeping all entered data; on the first step it is a no-op.
func (w Wizard) Prev() Wizard {
	next := w.clone()
	if next.current > 0 {
		next.current--
	}
	return next
}

// Restart returns to the dates step with a fresh snapshot after the server rejected
// a submission as stale. Entitlement and entered choices are kept.
func (w Wizard) Restart(snapshot *availability.Index) Wizard {
	next := w.clone()
	if snapshot == nil {
		snapshot = availability.Build(nil)
	}
	next.snapshot = snapshot
	next.current = 0
	next.noAvailability = false
	return next
}

// SetStay selects [checkIn, checkOut). A different range than before resets the rental
// selection to its default and re-lays lesson blocks on the new dates, dropping their
// instructor and start time assignments.
func (w Wizard) SetStay(checkIn, checkOut time.Time) (Wizard, error) {
	if err := w.requireStep(StepDates); err != nil {
		return w, err
	}

	stay, err := domain.NewInterval(domain.DateOnly(checkIn), domain.DateOnly(checkOut))
	if err != nil {
		return w, err
	}

	if w.draft.Stay != nil && w.draft.Stay.Equal(stay) {
		return w, nil
	}
	next := w.withStay(stay)
	next.noAvailability = false
	return next, nil
}

// ToggleRental flips rental day i of the stay
func (w Wizard) ToggleRental(i int) (Wizard, error) {
	if err := w.requireStep(StepRentals); err != nil {
		return w, err
	}

	rentals, err := w.draft.Rentals.Toggle(i)
	if err != nil {
		return w, err
	}

	next := w.clone()
	next.draft.Rentals = rentals
	return next, nil
}

// AssignLesson sets the instructor and preset start of block i
func (w Wizard) AssignLesson(i int, instructorID int64, start types.TimeString) (Wizard, error) {
	if err := w.requireStep(StepLessons); err != nil {
		return w, err
	}
	if i < 0 || i >= len(w.draft.Lessons) {
		return w, fmt.Errorf("%w: %d", ErrBlockOutOfRange, i)
	}
	if instructorID <= 0 {
		return w, fmt.Errorf("%w: %d", ErrInvalidInstructor, instructorID)
	}
	if !w.isPresetStart(start) {
		return w, fmt.Errorf("%w: %q", ErrNotPresetStart, start)
	}

	target := w.draft.Lessons[i]
	for j, b := range w.draft.Lessons {
		if j != i && b.IsScheduled() && b.InstructorID == instructorID &&
			b.StartTime == start && domain.IsSameDay(b.Date, target.Date) {
			return w, ErrInstructorDoubleBook
		}
	}

	next := w.clone()
	next.draft.Lessons[i].InstructorID = instructorID
	next.draft.Lessons[i].StartTime = start
	return next, nil
}

// UnassignLesson clears the instructor and start of block i
func (w Wizard) UnassignLesson(i int) (Wizard, error) {
	if err := w.requireStep(StepLessons); err != nil {
		return w, err
	}
	if i < 0 || i >= len(w.draft.Lessons) {
		return w, fmt.Errorf("%w: %d", ErrBlockOutOfRange, i)
	}

	next := w.clone()
	next.draft.Lessons[i] = next.draft.Lessons[i].Unassigned()
	return next, nil
}

// AddLessonBlock appends an unassigned block on date. The date may be any day of the
// stay including check-out day.
func (w Wizard) AddLessonBlock(date time.Time) (Wizard, error) {
	if err := w.requireStep(StepLessons); err != nil {
		return w, err
	}
	if w.draft.Stay == nil {
		return w, ErrNoStay
	}

	d := domain.DateOnly(date)
	if d.Before(w.draft.Stay.Start) || d.After(w.draft.Stay.End) {
		return w, fmt.Errorf("%w: %s", ErrDateOutsideStay, d.Format(domain.DateFormat))
	}

	next := w.clone()
	next.draft.Lessons = append(next.draft.Lessons, domain.LessonBlock{
		Date:            d,
		DurationMinutes: w.blockMinutes,
	})
	return next, nil
}

// RemoveLessonBlock drops block i
func (w Wizard) RemoveLessonBlock(i int) (Wizard, error) {
	if err := w.requireStep(StepLessons); err != nil {
		return w, err
	}
	if i < 0 || i >= len(w.draft.Lessons) {
		return w, fmt.Errorf("%w: %d", ErrBlockOutOfRange, i)
	}

	next := w.clone()
	next.draft.Lessons = append(next.draft.Lessons[:i], next.draft.Lessons[i+1:]...)
	return next, nil
}

// SetPaymentMethod selects how the booking is paid
func (w Wizard) SetPaymentMethod(method string) (Wizard, error) {
	if err := w.requireStep(StepPayment); err != nil {
		return w, err
	}
	if !domain.IsValidPaymentMethod(method) {
		return w, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, method)
	}

	next := w.clone()
	next.draft.PaymentMethod = method
	return next, nil
}

// SetVoucher attaches or, with nil, removes a discount voucher
func (w Wizard) SetVoucher(voucherID *string) (Wizard, error) {
	if err := w.requireStep(StepPayment); err != nil {
		return w, err
	}

	next := w.clone()
	next.draft.VoucherID = copyString(voucherID)
	return next, nil
}

// Payload flattens the draft for submission. It is available only on the payment step
// and only when every step is complete.
func (w Wizard) Payload() (domain.SubmissionPayload, error) {
	if err := w.requireStep(StepPayment); err != nil {
		return domain.SubmissionPayload{}, err
	}
	for _, step := range w.steps {
		if err := w.CanAdvance(step); err != nil {
			return domain.SubmissionPayload{}, err
		}
	}

	stay := *w.draft.Stay
	payload := domain.SubmissionPayload{
		DraftID:        w.draft.ID,
		ResourceID:     w.draft.ResourceID,
		DateRange:      stay,
		RentalDates:    []time.Time{},
		LessonBookings: []domain.LessonBlock{},
		PaymentMethod:  w.draft.PaymentMethod,
		VoucherID:      copyString(w.draft.VoucherID),
	}
	if w.hasStep(StepRentals) {
		payload.RentalDates = w.draft.Rentals.Dates(stay)
	}
	if w.hasStep(StepLessons) {
		for _, b := range w.draft.Lessons {
			if b.IsScheduled() {
				payload.LessonBookings = append(payload.LessonBookings, b)
			}
		}
	}

	return payload, nil
}

func (w Wizard) withStay(stay domain.Interval) Wizard {
	next := w.clone()
	next.draft.Stay = &stay
	next.draft.Rentals = allocation.NewRentalSelection(stay.Nights(), w.draft.Entitlement.RentalDays)
	next.draft.Lessons = allocation.DefaultLessonPlan(stay, w.totalBlocks, w.blockMinutes)
	return next
}

// occupancy is the index the stay is checked against. Without accommodation the
// stay only dates the services, so the unit's reservations do not constrain it.
func (w Wizard) occupancy() *availability.Index {
	if !w.draft.Composition.Accommodation {
		return availability.Build(nil)
	}
	return w.snapshot
}

// requiredNights is the stay length used for the default search
func (w Wizard) requiredNights() int {
	if w.draft.Composition.FixedNights > 0 {
		return w.draft.Composition.FixedNights
	}
	return w.draft.Entitlement.Nights
}

func (w Wizard) requireStep(step Step) error {
	if w.Current() != step {
		return fmt.Errorf("%w: current step is %s, not %s", ErrStepNotActive, w.Current(), step)
	}
	return nil
}

func (w Wizard) hasStep(step Step) bool {
	for _, s := range w.steps {
		if s == step {
			return true
		}
	}
	return false
}

func (w Wizard) isPresetStart(start types.TimeString) bool {
	for _, p := range w.presetStarts {
		if p == start {
			return true
		}
	}
	return false
}

// clone deep-copies the mutable parts of the draft
func (w Wizard) clone() Wizard {
	next := w
	if w.draft.Stay != nil {
		stay := *w.draft.Stay
		next.draft.Stay = &stay
	}
	next.draft.Lessons = make([]domain.LessonBlock, len(w.draft.Lessons))
	copy(next.draft.Lessons, w.draft.Lessons)
	next.draft.VoucherID = copyString(w.draft.VoucherID)
	// RentalSelection copies on write
	return next
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
