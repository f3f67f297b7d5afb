package get_stay_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_stay_availability: invalid input data")

	// ErrInvalidPeriod возвращается, когда окно календаря задано некорректно
	ErrInvalidPeriod = errors.New("get_stay_availability: invalid period")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_stay_availability: internal error")
)
