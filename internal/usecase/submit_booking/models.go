package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

// Settings параметры движка из конфигурации
type Settings struct {
	LessonBlockMinutes int
	PresetStarts       []types.TimeString
	Location           *time.Location
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64
	PackageID int64
	Payload   domain.SubmissionPayload
}

// Response модель ответа
type Response struct {
	Reservation *domain.Reservation
	Replayed    bool // черновик уже был отправлен, возвращено существующее бронирование
}
