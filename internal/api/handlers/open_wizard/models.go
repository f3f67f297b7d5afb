package open_wizard

import (
	"strconv"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	openWizard "github.com/m04kA/SMC-SchoolBooking/internal/usecase/open_wizard"
)

// WizardQuery параметры запроса из query string
type WizardQuery struct {
	ResourceID string `validate:"required,number"`
	DraftID    string `validate:"omitempty,uuid"`
}

// EntitlementResponse квоты пакета
type EntitlementResponse struct {
	Nights      int     `json:"nights"`
	RentalDays  int     `json:"rentalDays"`
	LessonHours float64 `json:"lessonHours"`
}

// StayResponse выбранный период проживания
type StayResponse struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Nights   int    `json:"nights"`
}

// RentalDayResponse день аренды снаряжения
type RentalDayResponse struct {
	Date     string `json:"date"`
	Selected bool   `json:"selected"`
}

// LessonBlockResponse блок занятия
type LessonBlockResponse struct {
	Date            string `json:"date"`
	InstructorID    *int64 `json:"instructorId,omitempty"`
	StartTime       string `json:"startTime,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
}

// WizardResponse HTTP response model
type WizardResponse struct {
	DraftID         string                `json:"draftId"`
	PackageID       int64                 `json:"packageId"`
	PackageName     string                `json:"packageName"`
	ResourceID      int64                 `json:"resourceId"`
	Steps           []string              `json:"steps"`
	CurrentStep     string                `json:"currentStep"`
	Entitlement     EntitlementResponse   `json:"entitlement"`
	FixedNights     int                   `json:"fixedNights,omitempty"`
	Stay            *StayResponse         `json:"stay,omitempty"`
	NoAvailability  bool                  `json:"noAvailability"`
	RentalLimit     int                   `json:"rentalLimit"`
	RentalDays      []RentalDayResponse   `json:"rentalDays"`
	TotalBlocks     int                   `json:"totalBlocks"`
	RemainingBlocks int                   `json:"remainingBlocks"`
	Lessons         []LessonBlockResponse `json:"lessons"`
	BookedPeriods   []StayResponse        `json:"bookedPeriods"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func (q *WizardQuery) ToUseCaseRequest(packageID int64) (*openWizard.Request, error) {
	resourceID, err := strconv.ParseInt(q.ResourceID, 10, 64)
	if err != nil {
		return nil, err
	}
	return &openWizard.Request{PackageID: packageID, ResourceID: resourceID, DraftID: q.DraftID}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *openWizard.Response) *WizardResponse {
	w := resp.Wizard
	draft := w.Draft()

	out := &WizardResponse{
		DraftID:     draft.ID,
		PackageID:   resp.Package.ID,
		PackageName: resp.Package.Name,
		ResourceID:  draft.ResourceID,
		CurrentStep: string(w.Current()),
		Entitlement: EntitlementResponse{
			Nights:      draft.Entitlement.Nights,
			RentalDays:  draft.Entitlement.RentalDays,
			LessonHours: draft.Entitlement.LessonHours,
		},
		FixedNights:     draft.Composition.FixedNights,
		NoAvailability:  w.NoAvailability(),
		RentalLimit:     draft.Rentals.Limit(),
		RentalDays:      []RentalDayResponse{},
		TotalBlocks:     w.TotalBlocks(),
		RemainingBlocks: w.RemainingBlocks(),
		Lessons:         make([]LessonBlockResponse, 0, len(draft.Lessons)),
		BookedPeriods:   make([]StayResponse, 0, len(resp.Snapshot)),
	}

	for _, s := range w.Steps() {
		out.Steps = append(out.Steps, string(s))
	}

	if draft.Stay != nil {
		out.Stay = toStay(*draft.Stay)
		selected := draft.Rentals.Selected()
		for i, day := range draft.Stay.Days() {
			out.RentalDays = append(out.RentalDays, RentalDayResponse{
				Date:     day.Format(domain.DateFormat),
				Selected: i < len(selected) && selected[i],
			})
		}
	}

	for _, b := range draft.Lessons {
		block := LessonBlockResponse{
			Date:            b.Date.Format(domain.DateFormat),
			StartTime:       b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
		}
		if b.InstructorID > 0 {
			id := b.InstructorID
			block.InstructorID = &id
		}
		out.Lessons = append(out.Lessons, block)
	}

	for _, iv := range resp.Snapshot {
		out.BookedPeriods = append(out.BookedPeriods, *toStay(iv))
	}

	return out
}

func toStay(iv domain.Interval) *StayResponse {
	return &StayResponse{
		CheckIn:  iv.Start.Format(domain.DateFormat),
		CheckOut: iv.End.Format(domain.DateFormat),
		Nights:   iv.Nights(),
	}
}
