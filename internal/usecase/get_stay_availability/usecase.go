package get_stay_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/engine/availability"
	"github.com/m04kA/SMC-SchoolBooking/pkg/ptr"
)

const defaultCalendarWindowDays = 31

// UseCase use case для получения календаря занятости ресурса и первой свободной даты
type UseCase struct {
	reservationRepo ReservationRepository
	settings        Settings
	metrics         EngineObserver
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	settings Settings,
	metrics EngineObserver,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		settings:        settings,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStayAvailability: resource=%d, nights=%d", req.ResourceID, req.Nights)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetStayAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем даты в часовой пояс школы
	loc := uc.settings.Location
	today := domain.DateIn(uc.timeProvider.Now().In(loc), loc)

	from := today
	if req.From != nil {
		from = domain.DateIn(*req.From, loc)
	}
	to := from.AddDate(0, 0, defaultCalendarWindowDays)
	if req.To != nil {
		to = domain.DateIn(*req.To, loc)
	}
	if err := validatePeriod(from, to); err != nil {
		uc.logger.Warn("GetStayAvailability: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем активные бронирования ресурса, которые заканчиваются после начала окна
	windowStart := from
	if today.Before(windowStart) {
		windowStart = today
	}
	reservations, err := uc.reservationRepo.GetByResource(ctx, domain.ResourceReservationsFilter{
		ResourceID: req.ResourceID,
		From:       &windowStart,
	})
	if err != nil {
		uc.logger.Error("GetStayAvailability: failed to get reservations for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 4. Строим индекс доступности (снимок)
	started := time.Now()
	index := buildIndex(reservations, loc)

	resp := &Response{
		ResourceID: req.ResourceID,
		From:       from,
		To:         to,
		BookedDays: index.BookedDays(from, to),
		Nights:     req.Nights,
	}

	// 5. Ищем первую свободную дату заезда
	if req.Nights > 0 {
		date, ok := availability.FirstAvailable(index, today, req.Nights, uc.settings.SearchWindowDays)
		if ok {
			resp.FirstAvailable = ptr.Ptr(date)
		} else {
			resp.NoAvailability = true
			uc.logger.Warn("GetStayAvailability: no %d-night window for resource=%d within %d days",
				req.Nights, req.ResourceID, uc.settings.SearchWindowDays)
		}
	}

	// 6. Проверяем запрошенный период
	if req.Start != nil {
		start := domain.DateIn(*req.Start, loc)
		resp.Start = &start
		resp.RangeFree = ptr.Ptr(!start.Before(today) && !index.RangeOverlaps(start, req.Nights))
	}

	if uc.metrics != nil {
		uc.metrics.ObserveEngine("stay_availability", started)
	}

	uc.logger.Info("GetStayAvailability: resource=%d, %d booked days in window, %d reservations",
		req.ResourceID, len(resp.BookedDays), len(reservations))

	return resp, nil
}

// buildIndex переводит периоды бронирований в часовой пояс школы и строит индекс
func buildIndex(reservations []*domain.Reservation, loc *time.Location) *availability.Index {
	normalized := make([]domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		res := *r
		res.Stay = domain.IntervalIn(r.Stay, loc)
		normalized = append(normalized, res)
	}
	return availability.Build(normalized)
}
