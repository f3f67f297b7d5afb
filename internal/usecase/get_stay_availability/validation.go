package get_stay_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

// maxCalendarWindowDays ограничение окна календаря (месяц с запасом на соседние недели)
const maxCalendarWindowDays = 62

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Nights < 0 || req.Nights > domain.MaxNightsPerStay {
		return fmt.Errorf("%w: nights must be in [0, %d]", ErrInvalidInput, domain.MaxNightsPerStay)
	}

	if req.Start != nil && req.Nights == 0 {
		return fmt.Errorf("%w: start requires nights", ErrInvalidInput)
	}

	return nil
}

// validatePeriod проверяет окно календаря после подстановки значений по умолчанию
func validatePeriod(from, to time.Time) error {
	days := domain.DaysBetween(from, to)
	if days <= 0 {
		return fmt.Errorf("%w: from must be before to", ErrInvalidPeriod)
	}
	if days > maxCalendarWindowDays {
		return fmt.Errorf("%w: window must not exceed %d days", ErrInvalidPeriod, maxCalendarWindowDays)
	}
	return nil
}
