package list_resource_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchoolBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SchoolBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidQuery      = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/reservations
//
// Query параметры (все опциональные):
// - from, to: период YYYY-MM-DD, возвращаются бронирования, пересекающие [from, to)
// - includeInactive: включить отменённые и завершённые бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/reservations - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /resources/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w)
		return
	}

	query := r.URL.Query()
	q := ListQuery{
		From:            query.Get("from"),
		To:              query.Get("to"),
		IncludeInactive: query.Get("includeInactive"),
	}
	if err := handlers.Validate(&q); err != nil {
		h.logger.Warn("GET /resources/{id}/reservations - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	serviceReq, err := q.ToServiceRequest(userID, resourceID)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/reservations - Failed to parse query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListByResource(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /resources/{id}/reservations - Access denied: resource_id=%d, user_id=%d", resourceID, userID)
			handlers.RespondForbidden(w)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /resources/{id}/reservations - Failed to list reservations: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/reservations - Reservations retrieved: resource_id=%d, count=%d",
		resourceID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
