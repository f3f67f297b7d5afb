package get_stay_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByResource(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error)
}

// EngineObserver метрики длительности операций движка (может быть nil)
type EngineObserver interface {
	ObserveEngine(operation string, started time.Time)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
