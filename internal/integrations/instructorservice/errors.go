package instructorservice

import "errors"

var (
	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("instructorservice client: instructor not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("instructorservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("instructorservice client: invalid response")
)
