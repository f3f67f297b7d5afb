package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByDraftID(ctx context.Context, draftID string) (*domain.Reservation, error)
	GetByResource(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error)
	GetActiveLessons(ctx context.Context, instructorID int64, date time.Time) ([]domain.LessonBlock, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// PackageClient интерфейс клиента сервиса пакетов
type PackageClient interface {
	GetPackage(ctx context.Context, packageID int64) (*domain.Package, error)
}

// SlotCache интерфейс кеша карт доступности инструкторов (может быть nil)
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time, instructorID int64) error
}

// Metrics интерфейс метрик use case (может быть nil)
type Metrics interface {
	IncSubmission(outcome string)
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
