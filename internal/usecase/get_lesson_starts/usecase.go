package get_lesson_starts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/engine/slots"
	"github.com/m04kA/SMC-SchoolBooking/internal/integrations/instructorservice"
)

// UseCase use case для получения доступных начал занятий у инструктора на дату
type UseCase struct {
	instructorClient InstructorClient
	lessonRepo       LessonRepository
	cache            SlotCache
	resolver         slots.Resolver
	settings         Settings
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case. cache и metrics могут быть nil.
func NewUseCase(
	instructorClient InstructorClient,
	lessonRepo LessonRepository,
	cache SlotCache,
	settings Settings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.LessonBlockMinutes <= 0 {
		settings.LessonBlockMinutes = domain.DefaultLessonBlockMinutes
	}
	return &UseCase{
		instructorClient: instructorClient,
		lessonRepo:       lessonRepo,
		cache:            cache,
		resolver:         slots.NewResolver(settings.StepMinutes, settings.BufferMinutes),
		settings:         settings,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetLessonStarts: instructor=%d, date=%s", req.InstructorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetLessonStarts: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и текущее время в часовом поясе школы
	loc := uc.settings.Location
	now := uc.timeProvider.Now().In(loc)
	today := domain.DateIn(now, loc)
	date := domain.DateIn(req.Date, loc)

	if date.Before(today) {
		uc.logger.Warn("GetLessonStarts: date %s is in the past", date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: %s", ErrDateInPast, date.Format(domain.DateFormat))
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.settings.LessonBlockMinutes
	}

	// 3. Получаем карту дня (кеш, затем сервис инструкторов с занятиями школы)
	dayMap, err := uc.getDayMap(ctx, req.InstructorID, date)
	if err != nil {
		return nil, err
	}

	// 4. Подбираем начала блоков
	started := time.Now()
	starts, err := uc.resolver.AvailableStarts(dayMap, duration, uc.settings.PresetStarts, date.Equal(today), now)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidDuration) {
			uc.logger.Warn("GetLessonStarts: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetLessonStarts: failed to resolve starts: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve starts: %v", ErrInternal, err)
	}
	if uc.metrics != nil {
		uc.metrics.ObserveEngine("lesson_starts", started)
	}

	uc.logger.Info("GetLessonStarts: instructor=%d, date=%s, %d starts available",
		req.InstructorID, date.Format(domain.DateFormat), len(starts))

	return &Response{
		InstructorID:    req.InstructorID,
		Date:            date,
		DurationMinutes: duration,
		Starts:          starts,
	}, nil
}

// getDayMap читает карту дня из кеша; ошибки кеша не прерывают запрос.
// Сервис инструкторов не знает о бронированиях школы, поэтому их занятия
// накладываются на карту до записи в кеш. Отправка и отмена бронирования сбрасывают кеш.
func (uc *UseCase) getDayMap(ctx context.Context, instructorID int64, date time.Time) (domain.DaySlotMap, error) {
	if uc.cache != nil {
		dayMap, ok, err := uc.cache.Get(ctx, date, instructorID)
		if err != nil {
			uc.logger.Warn("GetLessonStarts: slot cache read failed, falling back to instructor service: %v", err)
		}
		if uc.metrics != nil && err == nil {
			uc.metrics.IncSlotCache(ok)
		}
		if ok {
			return dayMap, nil
		}
	}

	dayMap, err := uc.instructorClient.GetDaySlots(ctx, instructorID, date)
	if err != nil {
		if errors.Is(err, instructorservice.ErrInstructorNotFound) {
			uc.logger.Warn("GetLessonStarts: instructor %d not found", instructorID)
			return domain.DaySlotMap{}, fmt.Errorf("%w: id=%d", ErrInstructorNotFound, instructorID)
		}
		uc.logger.Error("GetLessonStarts: failed to get day slots for instructor=%d: %v", instructorID, err)
		return domain.DaySlotMap{}, fmt.Errorf("%w: failed to get day slots: %v", ErrInternal, err)
	}

	booked, err := uc.lessonRepo.GetActiveLessons(ctx, instructorID, date)
	if err != nil {
		uc.logger.Error("GetLessonStarts: failed to get booked lessons for instructor=%d: %v", instructorID, err)
		return domain.DaySlotMap{}, fmt.Errorf("%w: failed to get booked lessons: %v", ErrInternal, err)
	}
	dayMap = dayMap.WithTaken(booked)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, date, instructorID, dayMap); err != nil {
			uc.logger.Warn("GetLessonStarts: failed to cache day slots: %v", err)
		}
	}

	return dayMap, nil
}
