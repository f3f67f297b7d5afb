package list_resource_reservations

import (
	"context"

	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations/models"
)

type ReservationService interface {
	ListByResource(ctx context.Context, req *models.ListByResourceRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
