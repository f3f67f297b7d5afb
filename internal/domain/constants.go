package domain

// Default engine configuration values
const (
	DefaultStepMinutes        = 30
	DefaultLessonBlockMinutes = 120 // 2 hours
	DefaultBufferMinutes      = 30
	DefaultSearchWindowDays   = 365
)

// DefaultPresetStarts business-approved lesson start times
var DefaultPresetStarts = []string{"09:00", "11:00", "13:30", "15:30"}

// Business validation constants
const (
	MinStepMinutes              = 5
	MaxLessonBlockMinutes       = 480 // 8 hours
	MaxSearchWindowDays         = 730
	MaxNightsPerStay            = 60
	MaxVoucherIDLength          = 64
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses reservations in these statuses do not occupy a resource.
// Used to filter reservations when building an availability index.
var InactiveStatuses = []ReservationStatus{
	StatusCancelledByUser,
	StatusCancelledBySchool,
	StatusCompleted,
}

// ActiveStatuses reservations in these statuses occupy a resource.
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
