package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByResource(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason *string) error
}

// SlotCache интерфейс кеша карт доступности инструкторов (может быть nil)
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time, instructorID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
