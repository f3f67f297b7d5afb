package wizard

import "github.com/m04kA/SMC-SchoolBooking/internal/domain"

// Step is one wizard page
type Step string

const (
	StepDates   Step = "dates"
	StepRentals Step = "rentals"
	StepLessons Step = "lessons"
	StepPayment Step = "payment"
)

// buildSteps returns Dates, then Rentals and Lessons when the package grants them, then Payment.
// A resource type with a zero entitlement gets no step since it could never be completed.
func buildSteps(c domain.PackageComposition, e domain.Entitlement, totalBlocks int) []Step {
	steps := []Step{StepDates}
	if c.Rentals && e.RentalDays > 0 {
		steps = append(steps, StepRentals)
	}
	if c.Lessons && totalBlocks > 0 {
		steps = append(steps, StepLessons)
	}
	return append(steps, StepPayment)
}
