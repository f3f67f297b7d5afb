package packageservice

// Package модель пакета из PackageService
type Package struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Nights      int         `json:"nights"`
	RentalDays  int         `json:"rentalDays"`
	LessonHours float64     `json:"lessonHours"`
	Composition Composition `json:"composition"`
}

// Composition состав пакета
type Composition struct {
	Accommodation bool `json:"accommodation"`
	Rentals       bool `json:"rentals"`
	Lessons       bool `json:"lessons"`
	FixedNights   int  `json:"fixedNights"` // 0 - длительность выбирает пользователь
}
