package packageservice

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("packageservice client: package not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("packageservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("packageservice client: invalid response")
)
