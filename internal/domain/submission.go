package domain

import "time"

// SubmissionPayload is the flattened draft handed to the booking submission service
type SubmissionPayload struct {
	DraftID        string
	ResourceID     int64
	DateRange      Interval
	RentalDates    []time.Time
	LessonBookings []LessonBlock
	PaymentMethod  string
	VoucherID      *string
}

// PaymentMethod values accepted at the payment step
const (
	PaymentCard     = "card"
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentVoucher  = "voucher"
)

// PaymentMethods lists the accepted payment methods
var PaymentMethods = []string{PaymentCard, PaymentCash, PaymentTransfer, PaymentVoucher}

// IsValidPaymentMethod reports whether method is accepted
func IsValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
