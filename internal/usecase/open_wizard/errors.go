package open_wizard

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("open_wizard: invalid input data")

	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("open_wizard: package not found")

	// ErrInvalidPackage возвращается, когда пакет нельзя забронировать (пустой состав, некорректные квоты)
	ErrInvalidPackage = errors.New("open_wizard: package cannot be booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("open_wizard: internal error")
)
