package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchoolBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SchoolBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations/models"
	submitBooking "github.com/m04kA/SMC-SchoolBooking/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректные даты: ожидается YYYY-MM-DD, выезд позже заезда"
	msgInvalidInput       = "некорректные данные бронирования"
	msgStayInPast         = "дата заезда уже прошла"
	msgEntitlement        = "выбор не соответствует составу пакета"
	msgPackageNotFound    = "пакет не найден"
	msgDraftConflict      = "черновик уже отправлен другим пользователем"
	msgStaleSnapshot      = "выбранные даты уже заняты, обновите календарь и выберите даты заново"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w)
		return
	}

	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrStaleSnapshot):
			h.logger.Warn("POST /bookings - Stale snapshot: user_id=%d, resource_id=%d, draft_id=%s",
				userID, req.ResourceID, req.DraftID)
			handlers.RespondConflict(w, msgStaleSnapshot)

		case errors.Is(err, submitBooking.ErrDraftOwnedByOtherUser):
			h.logger.Warn("POST /bookings - Draft owned by other user: user_id=%d, draft_id=%s", userID, req.DraftID)
			handlers.RespondConflict(w, msgDraftConflict)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitBooking.ErrStayInPast):
			h.logger.Warn("POST /bookings - Stay in past: user_id=%d, check_in=%s", userID, req.CheckIn)
			handlers.RespondBadRequest(w, msgStayInPast)

		case errors.Is(err, submitBooking.ErrEntitlementExceeded):
			h.logger.Warn("POST /bookings - Entitlement mismatch: user_id=%d, package_id=%d, error=%v",
				userID, req.PackageID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgEntitlement)

		case errors.Is(err, submitBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: package_id=%d", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking: user_id=%d, draft_id=%s, error=%v",
				userID, req.DraftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings - Booking submitted: reservation_id=%d, user_id=%d, replayed=%t",
		result.Reservation.ID, userID, result.Replayed)
	handlers.RespondJSON(w, status, models.FromDomainReservation(result.Reservation))
}
