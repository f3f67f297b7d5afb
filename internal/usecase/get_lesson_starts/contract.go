package get_lesson_starts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

// InstructorClient интерфейс клиента сервиса инструкторов
type InstructorClient interface {
	GetDaySlots(ctx context.Context, instructorID int64, date time.Time) (domain.DaySlotMap, error)
}

// LessonRepository интерфейс чтения занятий, уже забронированных в школе
type LessonRepository interface {
	GetActiveLessons(ctx context.Context, instructorID int64, date time.Time) ([]domain.LessonBlock, error)
}

// SlotCache интерфейс кеша карт доступности инструкторов (может быть nil)
type SlotCache interface {
	Get(ctx context.Context, date time.Time, instructorID int64) (domain.DaySlotMap, bool, error)
	Set(ctx context.Context, date time.Time, instructorID int64, dayMap domain.DaySlotMap) error
}

// Metrics интерфейс метрик use case (может быть nil)
type Metrics interface {
	IncSlotCache(hit bool)
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
