package get_stay_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchoolBooking/internal/api/handlers"
	getStayAvailability "github.com/m04kA/SMC-SchoolBooking/internal/usecase/get_stay_availability"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidQuery      = "некорректные параметры запроса, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidInput      = "некорректные входные данные"
	msgInvalidPeriod     = "некорректный период календаря"
)

type Handler struct {
	useCase GetStayAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetStayAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()
	q := AvailabilityQuery{
		From:   query.Get("from"),
		To:     query.Get("to"),
		Nights: query.Get("nights"),
		Start:  query.Get("start"),
	}
	if err := handlers.Validate(&q); err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	useCaseReq, err := q.ToUseCaseRequest(resourceID)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Failed to parse query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getStayAvailability.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/availability - Invalid input: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getStayAvailability.ErrInvalidPeriod):
			h.logger.Warn("GET /resources/{id}/availability - Invalid period: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /resources/{id}/availability - Failed to get availability: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/availability - Availability retrieved: resource_id=%d, booked_days=%d",
		resourceID, len(result.BookedDays))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
