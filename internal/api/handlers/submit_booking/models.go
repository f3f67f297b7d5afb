package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	submitBooking "github.com/m04kA/SMC-SchoolBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

// LessonRequest занятие в составе бронирования
type LessonRequest struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	InstructorID    int64  `json:"instructorId" validate:"gt=0"`
	StartTime       string `json:"startTime" validate:"required,datetime=15:04"`
	DurationMinutes int    `json:"durationMinutes" validate:"gt=0"`
}

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	PackageID     int64           `json:"packageId" validate:"gt=0"`
	DraftID       string          `json:"draftId" validate:"required,uuid"`
	ResourceID    int64           `json:"resourceId" validate:"gt=0"`
	CheckIn       string          `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut      string          `json:"checkOut" validate:"required,datetime=2006-01-02"`
	RentalDates   []string        `json:"rentalDates" validate:"dive,datetime=2006-01-02"`
	Lessons       []LessonRequest `json:"lessons" validate:"dive"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,oneof=card cash transfer voucher"`
	VoucherID     *string         `json:"voucherId,omitempty" validate:"omitempty,min=1,max=64"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest(userID int64) (*submitBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, err
	}
	stay, err := domain.NewInterval(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	rentals := make([]time.Time, 0, len(r.RentalDates))
	for _, s := range r.RentalDates {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, d)
	}

	lessons := make([]domain.LessonBlock, 0, len(r.Lessons))
	for _, l := range r.Lessons {
		d, err := time.Parse(domain.DateFormat, l.Date)
		if err != nil {
			return nil, err
		}
		start, err := types.NewTimeStringFromString(l.StartTime)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, domain.LessonBlock{
			Date:            d,
			InstructorID:    l.InstructorID,
			StartTime:       start,
			DurationMinutes: l.DurationMinutes,
		})
	}

	return &submitBooking.Request{
		UserID:    userID,
		PackageID: r.PackageID,
		Payload: domain.SubmissionPayload{
			DraftID:        r.DraftID,
			ResourceID:     r.ResourceID,
			DateRange:      stay,
			RentalDates:    rentals,
			LessonBookings: lessons,
			PaymentMethod:  r.PaymentMethod,
			VoucherID:      r.VoucherID,
		},
	}, nil
}
