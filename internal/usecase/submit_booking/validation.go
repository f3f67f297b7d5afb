package submit_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/engine/allocation"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

// validateRequest проверяет структуру payload, не обращаясь к пакету и хранилищу.
// Даты payload уже нормализованы в часовой пояс школы.
func validateRequest(req *Request, blockMinutes int, presets []types.TimeString) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	p := req.Payload
	if _, err := uuid.Parse(p.DraftID); err != nil {
		return fmt.Errorf("%w: draftID must be a UUID", ErrInvalidInput)
	}
	if p.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	stay, err := domain.NewInterval(p.DateRange.Start, p.DateRange.End)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if stay.Nights() > domain.MaxNightsPerStay {
		return fmt.Errorf("%w: stay must not exceed %d nights", ErrInvalidInput, domain.MaxNightsPerStay)
	}

	if !domain.IsValidPaymentMethod(p.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, p.PaymentMethod)
	}
	if p.VoucherID != nil && (*p.VoucherID == "" || len(*p.VoucherID) > domain.MaxVoucherIDLength) {
		return fmt.Errorf("%w: voucherID must be 1..%d characters", ErrInvalidInput, domain.MaxVoucherIDLength)
	}

	// Дни аренды: только ночи проживания, без повторов
	seen := make(map[string]struct{}, len(p.RentalDates))
	for _, d := range p.RentalDates {
		if !stay.Contains(d) {
			return fmt.Errorf("%w: rental date %s is outside the stay", ErrInvalidInput, d.Format(domain.DateFormat))
		}
		key := d.Format(domain.DateFormat)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: rental date %s is repeated", ErrInvalidInput, key)
		}
		seen[key] = struct{}{}
	}

	// Занятия: день проживания включая день выезда, назначенный инструктор,
	// предустановленное начало и стандартная длительность блока
	for i, b := range p.LessonBookings {
		if b.Date.Before(stay.Start) || b.Date.After(stay.End) {
			return fmt.Errorf("%w: lesson %d date %s is outside the stay", ErrInvalidInput, i, b.Date.Format(domain.DateFormat))
		}
		if !b.IsScheduled() {
			return fmt.Errorf("%w: lesson %d has no instructor or start time", ErrInvalidInput, i)
		}
		if !isPreset(b.StartTime, presets) {
			return fmt.Errorf("%w: lesson %d start %s is not a preset start", ErrInvalidInput, i, b.StartTime)
		}
		if b.DurationMinutes != blockMinutes {
			return fmt.Errorf("%w: lesson %d must last %d minutes", ErrInvalidInput, i, blockMinutes)
		}
		for j := 0; j < i; j++ {
			o := p.LessonBookings[j]
			if o.Conflicts(b) {
				return fmt.Errorf("%w: lessons %d and %d book the same instructor at the same time", ErrInvalidInput, j, i)
			}
		}
	}

	return nil
}

// validateEntitlement сверяет выбор с квотами пакета по тем же правилам, что и мастер
func validateEntitlement(p domain.SubmissionPayload, pkg *domain.Package, blockMinutes int) error {
	if err := pkg.Entitlement.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrEntitlementExceeded, err)
	}
	c, e := pkg.Composition, pkg.Entitlement

	if c.IsEmpty() {
		return fmt.Errorf("%w: package includes no resource", ErrEntitlementExceeded)
	}

	if c.FixedNights > 0 && p.DateRange.Nights() != c.FixedNights {
		return fmt.Errorf("%w: package requires exactly %d nights, got %d",
			ErrEntitlementExceeded, c.FixedNights, p.DateRange.Nights())
	}

	rentalDays := 0
	if c.Rentals {
		rentalDays = e.RentalDays
	}
	switch {
	case rentalDays == 0 && len(p.RentalDates) > 0:
		return fmt.Errorf("%w: package includes no rentals", ErrEntitlementExceeded)
	case rentalDays > 0 && len(p.RentalDates) == 0:
		return fmt.Errorf("%w: at least one rental day must be selected", ErrEntitlementExceeded)
	case len(p.RentalDates) > rentalDays:
		return fmt.Errorf("%w: at most %d rental days, got %d", ErrEntitlementExceeded, rentalDays, len(p.RentalDates))
	}

	totalBlocks := 0
	if c.Lessons {
		totalBlocks = allocation.TotalBlocks(e.LessonHours, float64(blockMinutes)/60)
	}
	if len(p.LessonBookings) != totalBlocks {
		return fmt.Errorf("%w: package includes %d lesson blocks, got %d",
			ErrEntitlementExceeded, totalBlocks, len(p.LessonBookings))
	}

	return nil
}

func isPreset(start types.TimeString, presets []types.TimeString) bool {
	for _, p := range presets {
		if p == start {
			return true
		}
	}
	return false
}
