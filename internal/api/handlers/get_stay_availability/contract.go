package get_stay_availability

import (
	"context"

	getStayAvailability "github.com/m04kA/SMC-SchoolBooking/internal/usecase/get_stay_availability"
)

type GetStayAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getStayAvailability.Request) (*getStayAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
