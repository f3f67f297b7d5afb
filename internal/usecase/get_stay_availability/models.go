package get_stay_availability

import "time"

// Settings параметры движка из конфигурации
type Settings struct {
	SearchWindowDays int
	Location         *time.Location
}

// Request модель запроса доступности ресурса
type Request struct {
	ResourceID int64
	From       *time.Time // начало окна календаря (по умолчанию сегодня)
	To         *time.Time // конец окна, не включая (по умолчанию From + 31 день)
	Nights     int        // длительность проживания для поиска первой свободной даты (0 - не искать)
	Start      *time.Time // проверить, свободен ли период [Start, Start+Nights)
}

// Response модель ответа
type Response struct {
	ResourceID     int64
	From           time.Time
	To             time.Time
	BookedDays     []time.Time
	Nights         int
	FirstAvailable *time.Time // nil, если Nights = 0 или свободных дат нет
	NoAvailability bool       // в окне поиска нет ни одной свободной даты
	Start          *time.Time
	RangeFree      *bool // заполняется, если задан Start
}
