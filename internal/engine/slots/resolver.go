// Package slots turns fine-grained day availability into lesson block starts.
package slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

var (
	ErrInvalidDuration    = errors.New("slots: duration must be a positive multiple of the step")
	ErrInvalidPresetStart = errors.New("slots: invalid preset start")
)

// Resolver checks preset lesson starts against a DaySlotMap.
// It never mutates its input, so results may be cached per (date, instructor).
type Resolver struct {
	StepMinutes   int
	BufferMinutes int
}

// NewResolver creates a resolver, falling back to defaults for non-positive values
func NewResolver(stepMinutes, bufferMinutes int) Resolver {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultStepMinutes
	}
	if bufferMinutes < 0 {
		bufferMinutes = domain.DefaultBufferMinutes
	}
	return Resolver{StepMinutes: stepMinutes, BufferMinutes: bufferMinutes}
}

// AvailableStarts returns the preset starts whose whole block is free, in preset order.
//
// For today's map, starts earlier than now+BufferMinutes are skipped. now is taken in the
// location the slot labels are expressed in.
func (r Resolver) AvailableStarts(
	dayMap domain.DaySlotMap,
	durationMinutes int,
	presetStarts []types.TimeString,
	isToday bool,
	now time.Time,
) ([]domain.StartOption, error) {
	step := r.StepMinutes
	if step <= 0 {
		step = domain.DefaultStepMinutes
	}
	if durationMinutes <= 0 || durationMinutes%step != 0 {
		return nil, fmt.Errorf("%w: %d minutes with %d minute step", ErrInvalidDuration, durationMinutes, step)
	}
	steps := durationMinutes / step
	cutoff := now.Add(time.Duration(r.BufferMinutes) * time.Minute)

	options := make([]domain.StartOption, 0, len(presetStarts))
	for _, start := range presetStarts {
		if err := start.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPresetStart, err)
		}

		if isToday && start.On(now).Before(cutoff) {
			continue
		}

		end, ok := r.fits(dayMap, start, steps, step)
		if !ok {
			continue
		}
		options = append(options, domain.StartOption{Start: start, End: end})
	}

	return options, nil
}

// fits walks steps consecutive keys from start; every one must exist and be free
func (r Resolver) fits(dayMap domain.DaySlotMap, start types.TimeString, steps, step int) (types.TimeString, bool) {
	for i := 0; i < steps; i++ {
		key, err := start.AddMinutes(i * step)
		if err != nil {
			return "", false
		}
		status, ok := dayMap.Status(key)
		if !ok || status != domain.SlotFree {
			return "", false
		}
	}

	// a block must end within the same day, midnight included
	end, err := types.EndTimeFromMinutes(start.Minutes() + steps*step)
	if err != nil {
		return "", false
	}
	return end, true
}
