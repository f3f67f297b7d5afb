package list_resource_reservations

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations/models"
)

// ListQuery параметры запроса из query string
type ListQuery struct {
	From            string `validate:"omitempty,datetime=2006-01-02"`
	To              string `validate:"omitempty,datetime=2006-01-02"`
	IncludeInactive string `validate:"omitempty,boolean"`
}

// ToServiceRequest конвертирует параметры запроса в модель сервиса
func (q *ListQuery) ToServiceRequest(userID, resourceID int64) (*models.ListByResourceRequest, error) {
	req := &models.ListByResourceRequest{UserID: userID, ResourceID: resourceID}

	if q.From != "" {
		from, err := time.Parse(domain.DateFormat, q.From)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(domain.DateFormat, q.To)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}
	if q.IncludeInactive != "" {
		includeInactive, err := strconv.ParseBool(q.IncludeInactive)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
