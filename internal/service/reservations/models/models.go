package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// ListByResourceRequest запрос на получение бронирований ресурса
type ListByResourceRequest struct {
	UserID          int64      `json:"userId"`
	ResourceID      int64      `json:"resourceId"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода, не включая (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListByResourceRequest) ToDomainFilter() domain.ResourceReservationsFilter {
	return domain.ResourceReservationsFilter{
		ResourceID:      r.ResourceID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}
}

// Response модели

// LessonResponse занятие в составе бронирования
type LessonResponse struct {
	Date            string `json:"date"`      // "2026-06-04"
	InstructorID    int64  `json:"instructorId"`
	StartTime       string `json:"startTime"` // "09:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            int64   `json:"id"`
	DraftID       string  `json:"draftId"`
	UserID        int64   `json:"userId"`
	ResourceID    int64   `json:"resourceId"`
	CheckIn       string  `json:"checkIn"`  // "2026-06-04"
	CheckOut      string  `json:"checkOut"` // "2026-06-07"
	Nights        int     `json:"nights"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	VoucherID     *string `json:"voucherId,omitempty"`

	RentalDates []string         `json:"rentalDates"`
	Lessons     []LessonResponse `json:"lessons"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		DraftID:            r.DraftID,
		UserID:             r.UserID,
		ResourceID:         r.ResourceID,
		CheckIn:            r.Stay.Start.Format(domain.DateFormat),
		CheckOut:           r.Stay.End.Format(domain.DateFormat),
		Nights:             r.Stay.Nights(),
		Status:             string(r.Status),
		PaymentMethod:      r.PaymentMethod,
		VoucherID:          r.VoucherID,
		RentalDates:        make([]string, 0, len(r.RentalDates)),
		Lessons:            make([]LessonResponse, 0, len(r.LessonBookings)),
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	for _, d := range r.RentalDates {
		resp.RentalDates = append(resp.RentalDates, d.Format(domain.DateFormat))
	}
	for _, b := range r.LessonBookings {
		resp.Lessons = append(resp.Lessons, LessonResponse{
			Date:            b.Date.Format(domain.DateFormat),
			InstructorID:    b.InstructorID,
			StartTime:       b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
		})
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByUser,
		domain.StatusCancelledBySchool,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
