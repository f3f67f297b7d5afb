package open_wizard

import (
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/engine/wizard"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

// Settings параметры движка из конфигурации
type Settings struct {
	LessonBlockMinutes int
	PresetStarts       []types.TimeString
	SearchWindowDays   int
	Location           *time.Location
}

// Request модель запроса на открытие мастера бронирования
type Request struct {
	PackageID  int64
	ResourceID int64
	DraftID    string // пусто - сгенерировать новый черновик
}

// Response модель ответа
type Response struct {
	Package  *domain.Package
	Wizard   wizard.Wizard
	Snapshot []domain.Interval // занятые периоды ресурса, на которых построен мастер
}
