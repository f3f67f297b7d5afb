package get_stay_availability

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	getStayAvailability "github.com/m04kA/SMC-SchoolBooking/internal/usecase/get_stay_availability"
)

// AvailabilityQuery параметры запроса из query string
type AvailabilityQuery struct {
	From   string `validate:"omitempty,datetime=2006-01-02"`
	To     string `validate:"omitempty,datetime=2006-01-02"`
	Nights string `validate:"omitempty,number"`
	Start  string `validate:"omitempty,datetime=2006-01-02"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceID     int64    `json:"resourceId"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	BookedDays     []string `json:"bookedDays"`
	Nights         int      `json:"nights,omitempty"`
	FirstAvailable *string  `json:"firstAvailable,omitempty"`
	NoAvailability bool     `json:"noAvailability"`
	Start          *string  `json:"start,omitempty"`
	RangeFree      *bool    `json:"rangeFree,omitempty"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func (q *AvailabilityQuery) ToUseCaseRequest(resourceID int64) (*getStayAvailability.Request, error) {
	req := &getStayAvailability.Request{ResourceID: resourceID}

	var err error
	if req.From, err = parseDate(q.From); err != nil {
		return nil, err
	}
	if req.To, err = parseDate(q.To); err != nil {
		return nil, err
	}
	if req.Start, err = parseDate(q.Start); err != nil {
		return nil, err
	}
	if q.Nights != "" {
		if req.Nights, err = strconv.Atoi(q.Nights); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStayAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		ResourceID:     resp.ResourceID,
		From:           resp.From.Format(domain.DateFormat),
		To:             resp.To.Format(domain.DateFormat),
		BookedDays:     make([]string, 0, len(resp.BookedDays)),
		Nights:         resp.Nights,
		FirstAvailable: formatDate(resp.FirstAvailable),
		NoAvailability: resp.NoAvailability,
		Start:          formatDate(resp.Start),
		RangeFree:      resp.RangeFree,
	}
	for _, d := range resp.BookedDays {
		out.BookedDays = append(out.BookedDays, d.Format(domain.DateFormat))
	}
	return out
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}
