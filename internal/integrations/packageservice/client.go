package packageservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

// Client клиент для работы с PackageService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PackageService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPackage получает пакет и его entitlement
func (c *Client) GetPackage(ctx context.Context, packageID int64) (*domain.Package, error) {
	url := fmt.Sprintf("%s/internal/packages/%d", c.baseURL, packageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrPackageNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var pkg Package
	if err := json.NewDecoder(resp.Body).Decode(&pkg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result := &domain.Package{
		ID:   pkg.ID,
		Name: pkg.Name,
		Entitlement: domain.Entitlement{
			Nights:      pkg.Nights,
			RentalDays:  pkg.RentalDays,
			LessonHours: pkg.LessonHours,
		},
		Composition: domain.PackageComposition{
			Accommodation: pkg.Composition.Accommodation,
			Rentals:       pkg.Composition.Rentals,
			Lessons:       pkg.Composition.Lessons,
			FixedNights:   pkg.Composition.FixedNights,
		},
	}

	if err := result.Entitlement.Validate(); err != nil {
		c.log.Warn("PackageService returned invalid entitlement for package=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return result, nil
}
