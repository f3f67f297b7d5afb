package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinels for errors.Is matching of the engine error types
var (
	ErrInvalidRange       = errors.New("domain: invalid range")
	ErrCapacityExceeded   = errors.New("domain: capacity exceeded")
	ErrStaleSnapshot      = errors.New("domain: stale snapshot conflict")
	ErrIncompleteStep     = errors.New("domain: incomplete step")
	ErrInvalidEntitlement = errors.New("domain: invalid entitlement")
	ErrUnknownSlotStatus  = errors.New("domain: unknown slot status")
	ErrDuplicateSlot      = errors.New("domain: duplicate slot time")
)

// InvalidRangeError is returned when an interval is empty or inverted
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s must be before end %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// CapacityExceededError is returned when a selection would exceed the entitlement cap
type CapacityExceededError struct {
	Resource string // "rental_days", "lesson_blocks"
	Limit    int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded: at most %d %s can be selected", e.Limit, e.Resource)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// StaleSnapshotConflictError is returned by the submission path when the requested
// stay collides with a reservation committed after the client fetched its snapshot.
// The client must re-fetch availability and restart the wizard from the dates step.
type StaleSnapshotConflictError struct {
	ResourceID int64
	Stay       Interval
	Reason     string
}

func (e *StaleSnapshotConflictError) Error() string {
	return fmt.Sprintf("stale snapshot: resource %d is no longer free for %s..%s: %s",
		e.ResourceID, e.Stay.Start.Format(DateFormat), e.Stay.End.Format(DateFormat), e.Reason)
}

func (e *StaleSnapshotConflictError) Is(target error) bool {
	return target == ErrStaleSnapshot
}

// IncompleteStepError is returned when a wizard step cannot be left yet
type IncompleteStepError struct {
	Step   string
	Reason string
}

func (e *IncompleteStepError) Error() string {
	return fmt.Sprintf("step %s is incomplete: %s", e.Step, e.Reason)
}

func (e *IncompleteStepError) Is(target error) bool {
	return target == ErrIncompleteStep
}
