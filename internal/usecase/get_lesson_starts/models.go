package get_lesson_starts

import (
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

// Settings параметры движка из конфигурации
type Settings struct {
	StepMinutes        int
	BufferMinutes      int
	LessonBlockMinutes int
	PresetStarts       []types.TimeString
	Location           *time.Location
}

// Request модель запроса доступных начал занятий
type Request struct {
	InstructorID    int64
	Date            time.Time
	DurationMinutes int // 0 - длительность блока по умолчанию
}

// Response модель ответа
type Response struct {
	InstructorID    int64
	Date            time.Time
	DurationMinutes int
	Starts          []domain.StartOption
}
