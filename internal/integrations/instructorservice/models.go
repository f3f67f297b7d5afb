package instructorservice

// Slot отметка доступности инструктора с шагом 30 минут
type Slot struct {
	Time   string `json:"time"`   // "HH:MM"
	Status string `json:"status"` // free, taken, blackout
}

// ErrorResponse модель ошибки от InstructorService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
