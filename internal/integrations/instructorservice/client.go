package instructorservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

// Client клиент для работы с InstructorService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента InstructorService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDaySlots получает доступность инструктора на дату с шагом 30 минут
func (c *Client) GetDaySlots(ctx context.Context, instructorID int64, date time.Time) (domain.DaySlotMap, error) {
	endpoint := fmt.Sprintf("%s/internal/instructors/%d/slots?date=%s",
		c.baseURL, instructorID, url.QueryEscape(date.Format(domain.DateFormat)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.DaySlotMap{}, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.DaySlotMap{}, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return domain.DaySlotMap{}, fmt.Errorf("%w: invalid instructor ID or date", ErrInvalidResponse)
	case http.StatusNotFound:
		return domain.DaySlotMap{}, ErrInstructorNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return domain.DaySlotMap{}, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var slots []Slot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return domain.DaySlotMap{}, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	dayMap, err := toDaySlotMap(slots)
	if err != nil {
		c.log.Warn("InstructorService returned malformed slots for instructor=%d date=%s: %v",
			instructorID, date.Format(domain.DateFormat), err)
		return domain.DaySlotMap{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return dayMap, nil
}

func toDaySlotMap(slots []Slot) (domain.DaySlotMap, error) {
	markers := make([]domain.DaySlot, 0, len(slots))
	for _, s := range slots {
		ts, err := types.NewTimeStringFromString(s.Time)
		if err != nil {
			return domain.DaySlotMap{}, err
		}
		markers = append(markers, domain.DaySlot{Time: ts, Status: domain.SlotStatus(s.Status)})
	}
	return domain.NewDaySlotMap(markers)
}
