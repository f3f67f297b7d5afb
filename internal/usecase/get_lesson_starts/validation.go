package get_lesson_starts

import (
	"fmt"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.InstructorID <= 0 {
		return fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 || req.DurationMinutes > domain.MaxLessonBlockMinutes {
		return fmt.Errorf("%w: duration must be in [0, %d] minutes", ErrInvalidInput, domain.MaxLessonBlockMinutes)
	}

	return nil
}
