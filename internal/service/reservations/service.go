package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SchoolBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations/models"
)

// allowedTransitions допустимые смены статуса сотрудником школы (отмена идёт через Cancel)
var allowedTransitions = map[domain.ReservationStatus]domain.ReservationStatus{
	domain.StatusPending:   domain.StatusConfirmed,
	domain.StatusConfirmed: domain.StatusCompleted,
}

// Service сервис для работы с бронированиями проживания
type Service struct {
	reservationRepo ReservationRepository
	cache           SlotCache
	staff           map[int64]struct{}
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований. cache может быть nil.
func NewService(
	reservationRepo ReservationRepository,
	cache SlotCache,
	staffUserIDs []int64,
	logger Logger,
) *Service {
	staff := make(map[int64]struct{}, len(staffUserIDs))
	for _, id := range staffUserIDs {
		staff[id] = struct{}{}
	}
	return &Service{
		reservationRepo: reservationRepo,
		cache:           cache,
		staff:           staff,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, сотрудник школы видит любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.get(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if res.UserID != userID && !s.isStaff(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(res), nil
}

// ListByResource получает бронирования ресурса с фильтрацией по периоду
// Доступно только сотрудникам школы
func (s *Service) ListByResource(ctx context.Context, req *models.ListByResourceRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByResource: fetching reservations for resource=%d, user=%d, includeInactive=%t",
		req.ResourceID, req.UserID, req.IncludeInactive)

	if !s.isStaff(req.UserID) {
		s.logger.Warn("ListByResource: user=%d is not school staff", req.UserID)
		return nil, ErrAccessDenied
	}

	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("ListByResource: invalid period for resource=%d", req.ResourceID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByResource(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListByResource: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ListByResource - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByResource: successfully fetched %d reservations for resource=%d", len(reservations), req.ResourceID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование и освобождает период
// Пользователь может отменить только своё бронирование (cancelled_by_user)
// Сотрудник школы может отменить любое бронирование (cancelled_by_school)
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, req.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	res, err := s.get(ctx, id, "Cancel")
	if err != nil {
		return err
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.ReservationStatus
	switch {
	case res.UserID == req.UserID:
		cancelStatus = domain.StatusCancelledByUser
	case s.isStaff(req.UserID):
		cancelStatus = domain.StatusCancelledBySchool
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, id)
		return ErrAccessDenied
	}

	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, res.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, id, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Время инструкторов освободилось
	s.invalidateSlots(ctx, res.LessonBookings)

	s.logger.Info("Cancel: successfully cancelled reservation id=%d with status=%s", id, cancelStatus)
	return nil
}

// UpdateStatus подтверждает или завершает бронирование
// Доступно только сотрудникам школы
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d", id, req.Status, req.UserID)

	if !s.isStaff(req.UserID) {
		s.logger.Warn("UpdateStatus: user=%d is not school staff", req.UserID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	res, err := s.get(ctx, id, "UpdateStatus")
	if err != nil {
		return err
	}

	if next, ok := allowedTransitions[res.Status]; !ok || next != newStatus {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for reservation id=%d", res.Status, newStatus, id)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, newStatus)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", id)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", id, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, id int64, op string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}

func (s *Service) isStaff(userID int64) bool {
	_, ok := s.staff[userID]
	return ok
}

func (s *Service) invalidateSlots(ctx context.Context, lessons []domain.LessonBlock) {
	if s.cache == nil {
		return
	}
	for _, b := range lessons {
		if err := s.cache.Invalidate(ctx, b.Date, b.InstructorID); err != nil {
			s.logger.Warn("Cancel: failed to invalidate slots of instructor=%d on %s: %v",
				b.InstructorID, b.Date.Format(domain.DateFormat), err)
		}
	}
}
