package get_lesson_starts

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	getLessonStarts "github.com/m04kA/SMC-SchoolBooking/internal/usecase/get_lesson_starts"
)

// LessonStartsQuery параметры запроса из query string
type LessonStartsQuery struct {
	Date     string `validate:"required,datetime=2006-01-02"`
	Duration string `validate:"omitempty,number"`
}

// StartOptionResponse доступное начало занятия
type StartOptionResponse struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "11:00"
}

// LessonStartsResponse HTTP response model
type LessonStartsResponse struct {
	InstructorID    int64                 `json:"instructorId"`
	Date            string                `json:"date"`
	DurationMinutes int                   `json:"durationMinutes"`
	Starts          []StartOptionResponse `json:"starts"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func (q *LessonStartsQuery) ToUseCaseRequest(instructorID int64) (*getLessonStarts.Request, error) {
	date, err := time.Parse(domain.DateFormat, q.Date)
	if err != nil {
		return nil, err
	}

	req := &getLessonStarts.Request{InstructorID: instructorID, Date: date}
	if q.Duration != "" {
		if req.DurationMinutes, err = strconv.Atoi(q.Duration); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getLessonStarts.Response) *LessonStartsResponse {
	out := &LessonStartsResponse{
		InstructorID:    resp.InstructorID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Starts:          make([]StartOptionResponse, 0, len(resp.Starts)),
	}
	for _, s := range resp.Starts {
		out.Starts = append(out.Starts, StartOptionResponse{Start: s.Start.String(), End: s.End.String()})
	}
	return out
}
