package get_lesson_starts

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_lesson_starts: invalid input data")

	// ErrDateInPast возвращается, когда запрошена дата в прошлом
	ErrDateInPast = errors.New("get_lesson_starts: date is in the past")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("get_lesson_starts: instructor not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_lesson_starts: internal error")
)
