package submit_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrEntitlementExceeded возвращается, когда выбор не соответствует квотам пакета
	ErrEntitlementExceeded = errors.New("submit_booking: selection does not match package entitlement")

	// ErrStayInPast возвращается, когда дата заезда уже прошла
	ErrStayInPast = errors.New("submit_booking: stay starts in the past")

	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("submit_booking: package not found")

	// ErrDraftOwnedByOtherUser возвращается, когда черновик уже отправлен другим пользователем
	ErrDraftOwnedByOtherUser = errors.New("submit_booking: draft was submitted by another user")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
