package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SchoolBooking/internal/integrations/packageservice"
	"github.com/m04kA/SMC-SchoolBooking/pkg/metrics"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

// UseCase use case для авторитетной отправки черновика бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	packageClient   PackageClient
	cache           SlotCache
	metrics         Metrics
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. cache и metrics могут быть nil.
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	packageClient PackageClient,
	cache SlotCache,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.LessonBlockMinutes <= 0 {
		settings.LessonBlockMinutes = domain.DefaultLessonBlockMinutes
	}
	if len(settings.PresetStarts) == 0 {
		for _, s := range domain.DefaultPresetStarts {
			settings.PresetStarts = append(settings.PresetStarts, types.MustTimeString(s))
		}
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		packageClient:   packageClient,
		cache:           cache,
		metrics:         metrics,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: user=%d, draft=%s, resource=%d",
		req.UserID, req.Payload.DraftID, req.Payload.ResourceID)

	resp, err := uc.execute(ctx, req)
	uc.record(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Нормализуем даты в часовой пояс школы и валидируем payload
	loc := uc.settings.Location
	payload := normalizePayload(req.Payload, loc)
	req = &Request{UserID: req.UserID, PackageID: req.PackageID, Payload: payload}

	if err := validateRequest(req, uc.settings.LessonBlockMinutes, uc.settings.PresetStarts); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Повторная отправка того же черновика возвращает уже созданное бронирование
	existing, err := uc.findByDraft(ctx, payload.DraftID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return uc.replay(existing, req.UserID)
	}

	// 3. Проверяем, что заезд не в прошлом
	today := domain.DateIn(uc.timeProvider.Now().In(loc), loc)
	if payload.DateRange.Start.Before(today) {
		uc.logger.Warn("SubmitBooking: stay %s starts before today %s",
			payload.DateRange.Start.Format(domain.DateFormat), today.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: check-in %s", ErrStayInPast, payload.DateRange.Start.Format(domain.DateFormat))
	}

	// 4. Сверяем выбор с квотами пакета
	pkg, err := uc.packageClient.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packageservice.ErrPackageNotFound) {
			uc.logger.Warn("SubmitBooking: package %d not found", req.PackageID)
			return nil, fmt.Errorf("%w: id=%d", ErrPackageNotFound, req.PackageID)
		}
		uc.logger.Error("SubmitBooking: failed to get package %d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}
	if err := validateEntitlement(payload, pkg, uc.settings.LessonBlockMinutes); err != nil {
		uc.logger.Warn("SubmitBooking: entitlement check failed for package=%d: %v", req.PackageID, err)
		return nil, err
	}

	// 5. Проверка пересечений и вставка в одной SERIALIZABLE транзакции
	accommodation := pkg.Composition.Accommodation
	var created *domain.Reservation
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Без проживания даты не занимают ресурс
		if accommodation {
			if err := uc.checkResource(ctx, payload); err != nil {
				return err
			}
		}
		if err := uc.checkInstructors(ctx, payload); err != nil {
			return err
		}

		var err error
		created, err = uc.reservationRepo.Create(ctx, newReservation(req, accommodation))
		return err
	})
	if err != nil {
		return uc.handleTxError(ctx, err, req)
	}

	// 6. Занятия школы накладываются на карты доступности инструкторов, сбрасываем кеш
	uc.invalidateSlots(ctx, payload.LessonBookings)

	uc.logger.Info("SubmitBooking: reservation %d created for user=%d, resource=%d, %s..%s",
		created.ID, req.UserID, payload.ResourceID,
		payload.DateRange.Start.Format(domain.DateFormat), payload.DateRange.End.Format(domain.DateFormat))

	return &Response{Reservation: created}, nil
}

// checkResource повторно проверяет, что ресурс свободен на весь период
func (uc *UseCase) checkResource(ctx context.Context, payload domain.SubmissionPayload) error {
	active, err := uc.reservationRepo.GetByResource(ctx, domain.ResourceReservationsFilter{
		ResourceID: payload.ResourceID,
		From:       &payload.DateRange.Start,
		To:         &payload.DateRange.End,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to lock reservations: %v", ErrInternal, err)
	}

	for _, r := range active {
		if r.OccupiesResource() && domain.IntervalIn(r.Stay, uc.settings.Location).Overlaps(payload.DateRange) {
			return &domain.StaleSnapshotConflictError{
				ResourceID: payload.ResourceID,
				Stay:       payload.DateRange,
				Reason:     fmt.Sprintf("overlaps reservation %d", r.ID),
			}
		}
	}
	return nil
}

// checkInstructors проверяет, что выбранные занятия не пересекаются с уже забронированными
// у тех же инструкторов. Занятия читаются по паре (инструктор, дата) один раз.
func (uc *UseCase) checkInstructors(ctx context.Context, payload domain.SubmissionPayload) error {
	type instructorDay struct {
		instructorID int64
		date         string
	}
	booked := make(map[instructorDay][]domain.LessonBlock)

	for _, b := range payload.LessonBookings {
		key := instructorDay{instructorID: b.InstructorID, date: b.Date.Format(domain.DateFormat)}
		existing, ok := booked[key]
		if !ok {
			var err error
			existing, err = uc.reservationRepo.GetActiveLessons(ctx, b.InstructorID, b.Date)
			if err != nil {
				return fmt.Errorf("%w: failed to lock lessons of instructor %d: %v", ErrInternal, b.InstructorID, err)
			}
			booked[key] = existing
		}

		for _, o := range existing {
			o.Date = domain.DateIn(o.Date, uc.settings.Location)
			if o.Conflicts(b) {
				return &domain.StaleSnapshotConflictError{
					ResourceID: payload.ResourceID,
					Stay:       payload.DateRange,
					Reason: fmt.Sprintf("instructor %d is already booked on %s at %s",
						b.InstructorID, key.date, o.StartTime),
				}
			}
		}
	}
	return nil
}

// handleTxError переводит ошибки транзакции в ошибки use case
func (uc *UseCase) handleTxError(ctx context.Context, err error, req *Request) (*Response, error) {
	payload := req.Payload

	switch {
	case errors.Is(err, domain.ErrStaleSnapshot):
		uc.logger.Warn("SubmitBooking: stale snapshot for resource=%d: %v", payload.ResourceID, err)
		return nil, err

	case reservation.IsInstructorBusy(err):
		uc.logger.Warn("SubmitBooking: concurrent booking of an instructor: %v", err)
		return nil, &domain.StaleSnapshotConflictError{
			ResourceID: payload.ResourceID,
			Stay:       payload.DateRange,
			Reason:     "instructor was booked concurrently",
		}

	case reservation.IsConflict(err):
		// Пересечение поймано exclusion constraint или конфликтом сериализации
		uc.logger.Warn("SubmitBooking: concurrent booking of resource=%d: %v", payload.ResourceID, err)
		return nil, &domain.StaleSnapshotConflictError{
			ResourceID: payload.ResourceID,
			Stay:       payload.DateRange,
			Reason:     "resource was booked concurrently",
		}

	case errors.Is(err, reservation.ErrDuplicateDraft):
		// Параллельная отправка того же черновика успела раньше
		existing, findErr := uc.findByDraft(ctx, payload.DraftID)
		if findErr != nil {
			return nil, findErr
		}
		if existing == nil {
			uc.logger.Error("SubmitBooking: draft %s reported as duplicate but not found", payload.DraftID)
			return nil, fmt.Errorf("%w: duplicate draft %s not found", ErrInternal, payload.DraftID)
		}
		return uc.replay(existing, req.UserID)

	case errors.Is(err, ErrInternal):
		uc.logger.Error("SubmitBooking: %v", err)
		return nil, err
	}

	uc.logger.Error("SubmitBooking: failed to create reservation: %v", err)
	return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
}

func (uc *UseCase) findByDraft(ctx context.Context, draftID string) (*domain.Reservation, error) {
	existing, err := uc.reservationRepo.GetByDraftID(ctx, draftID)
	if err != nil {
		if errors.Is(err, reservation.ErrReservationNotFound) {
			return nil, nil
		}
		uc.logger.Error("SubmitBooking: failed to look up draft %s: %v", draftID, err)
		return nil, fmt.Errorf("%w: failed to look up draft: %v", ErrInternal, err)
	}
	return existing, nil
}

func (uc *UseCase) replay(existing *domain.Reservation, userID int64) (*Response, error) {
	if existing.UserID != userID {
		uc.logger.Warn("SubmitBooking: draft %s belongs to user %d, not %d", existing.DraftID, existing.UserID, userID)
		return nil, fmt.Errorf("%w: draft %s", ErrDraftOwnedByOtherUser, existing.DraftID)
	}
	uc.logger.Info("SubmitBooking: draft %s already submitted as reservation %d", existing.DraftID, existing.ID)
	return &Response{Reservation: existing, Replayed: true}, nil
}

func (uc *UseCase) invalidateSlots(ctx context.Context, lessons []domain.LessonBlock) {
	if uc.cache == nil {
		return
	}
	for _, b := range lessons {
		if err := uc.cache.Invalidate(ctx, b.Date, b.InstructorID); err != nil {
			uc.logger.Warn("SubmitBooking: failed to invalidate slots of instructor=%d on %s: %v",
				b.InstructorID, b.Date.Format(domain.DateFormat), err)
		}
	}
}

func (uc *UseCase) record(err error) {
	if uc.metrics == nil {
		return
	}
	switch {
	case err == nil:
		uc.metrics.IncSubmission(metrics.OutcomeCreated)
	case errors.Is(err, domain.ErrStaleSnapshot):
		uc.metrics.IncSubmission(metrics.OutcomeStaleSnapshot)
	case errors.Is(err, ErrInternal):
		uc.metrics.IncSubmission(metrics.OutcomeError)
	default:
		uc.metrics.IncSubmission(metrics.OutcomeInvalid)
	}
}

// normalizePayload переносит все даты payload на полночь в часовом поясе школы
func normalizePayload(p domain.SubmissionPayload, loc *time.Location) domain.SubmissionPayload {
	out := p
	out.DateRange = domain.IntervalIn(p.DateRange, loc)

	out.RentalDates = make([]time.Time, 0, len(p.RentalDates))
	for _, d := range p.RentalDates {
		out.RentalDates = append(out.RentalDates, domain.DateIn(d, loc))
	}

	out.LessonBookings = make([]domain.LessonBlock, 0, len(p.LessonBookings))
	for _, b := range p.LessonBookings {
		b.Date = domain.DateIn(b.Date, loc)
		out.LessonBookings = append(out.LessonBookings, b)
	}
	return out
}

func newReservation(req *Request, accommodation bool) *domain.Reservation {
	p := req.Payload
	return &domain.Reservation{
		DraftID:         p.DraftID,
		UserID:          req.UserID,
		ResourceID:      p.ResourceID,
		Stay:            p.DateRange,
		Status:          domain.StatusPending,
		PaymentMethod:   p.PaymentMethod,
		VoucherID:       p.VoucherID,
		NoAccommodation: !accommodation,
		RentalDates:     p.RentalDates,
		LessonBookings:  p.LessonBookings,
	}
}
