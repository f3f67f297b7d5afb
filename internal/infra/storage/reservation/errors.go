package reservation

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrOverlap возвращается, когда exclusion constraint отклонил пересекающийся период
	ErrOverlap = errors.New("reservation.repository: stay overlaps an existing reservation")

	// ErrInstructorBusy возвращается, когда занятие пересекается с уже забронированным у того же инструктора
	ErrInstructorBusy = errors.New("reservation.repository: instructor already booked for this time")

	// ErrSerialization возвращается, когда SERIALIZABLE транзакция не смогла зафиксироваться
	ErrSerialization = errors.New("reservation.repository: serialization failure")

	// ErrDuplicateDraft возвращается при повторной отправке того же черновика
	ErrDuplicateDraft = errors.New("reservation.repository: draft already submitted")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

// Коды ошибок PostgreSQL
const (
	pgExclusionViolation  = "23P01"
	pgUniqueViolation     = "23505"
	pgSerializationFailed = "40001"
)

// lessonsNoOverlapConstraint exclusion constraint занятий инструктора
const lessonsNoOverlapConstraint = "reservation_lessons_no_overlap"


// classifyPQError переводит ошибку драйвера в ошибку репозитория.
// Возвращает nil, если ошибка не относится к известным конфликтам.
func classifyPQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case pgExclusionViolation:
		if pqErr.Constraint == lessonsNoOverlapConstraint {
			return ErrInstructorBusy
		}
		return ErrOverlap
	case pgUniqueViolation:
		return ErrDuplicateDraft
	case pgSerializationFailed:
		return ErrSerialization
	}
	return nil
}

// IsConflict проверяет, что ошибка означает устаревший снимок доступности.
// Понимает как ошибки репозитория, так и сырые ошибки драйвера (например, при COMMIT).
func IsConflict(err error) bool {
	if errors.Is(err, ErrOverlap) || errors.Is(err, ErrInstructorBusy) || errors.Is(err, ErrSerialization) {
		return true
	}
	mapped := classifyPQError(err)
	return mapped == ErrOverlap || mapped == ErrInstructorBusy || mapped == ErrSerialization
}

// IsInstructorBusy проверяет, что конфликт вызван занятием у уже занятого инструктора
func IsInstructorBusy(err error) bool {
	return errors.Is(err, ErrInstructorBusy) || classifyPQError(err) == ErrInstructorBusy
}
