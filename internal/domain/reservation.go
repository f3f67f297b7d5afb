package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending           ReservationStatus = "pending"
	StatusConfirmed         ReservationStatus = "confirmed"
	StatusCompleted         ReservationStatus = "completed"
	StatusCancelledByUser   ReservationStatus = "cancelled_by_user"
	StatusCancelledBySchool ReservationStatus = "cancelled_by_school"
)

// Reservation is a committed stay on a bookable resource (an accommodation unit).
type Reservation struct {
	ID            int64
	DraftID       string // idempotency key, the wizard draft this reservation came from
	UserID        int64
	ResourceID    int64
	Stay          Interval
	Status        ReservationStatus
	PaymentMethod string
	VoucherID     *string

	// NoAccommodation marks lessons-only and rental-only bookings: the stay only
	// dates the services and does not occupy the resource.
	NoAccommodation bool

	RentalDates    []time.Time
	LessonBookings []LessonBlock

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its resource
func (r *Reservation) IsActive() bool {
	for _, s := range InactiveStatuses {
		if r.Status == s {
			return false
		}
	}
	return true
}

// OccupiesResource returns true if the reservation blocks its resource for other stays
func (r *Reservation) OccupiesResource() bool {
	return r.IsActive() && !r.NoAccommodation
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByUser || r.Status == StatusCancelledBySchool
}

// ResourceReservationsFilter selects reservations of one resource
type ResourceReservationsFilter struct {
	ResourceID      int64      // required
	From            *time.Time // stays ending after From (optional)
	To              *time.Time // stays starting before To (optional)
	IncludeInactive bool       // include cancelled and completed reservations
}
