package wizard

import "errors"

var (
	ErrEmptyComposition     = errors.New("wizard: package includes no resource")
	ErrStepNotActive        = errors.New("wizard: setter does not belong to the current step")
	ErrNoNextStep           = errors.New("wizard: payment is the last step")
	ErrBlockOutOfRange      = errors.New("wizard: lesson block index out of range")
	ErrDateOutsideStay      = errors.New("wizard: date is outside the stay")
	ErrNotPresetStart       = errors.New("wizard: start time is not a preset start")
	ErrInvalidInstructor    = errors.New("wizard: invalid instructor id")
	ErrInstructorDoubleBook = errors.New("wizard: instructor already has a block at this time")
	ErrUnknownPaymentMethod = errors.New("wizard: unknown payment method")
	ErrNoStay               = errors.New("wizard: stay is not selected")
)
