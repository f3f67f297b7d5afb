package get_lesson_starts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchoolBooking/internal/api/handlers"
	getLessonStarts "github.com/m04kA/SMC-SchoolBooking/internal/usecase/get_lesson_starts"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidQuery        = "некорректные параметры запроса, дата ожидается в формате YYYY-MM-DD"
	msgInvalidInput        = "некорректные входные данные"
	msgDateInPast          = "дата занятия уже прошла"
	msgInstructorNotFound  = "инструктор не найден"
)

type Handler struct {
	useCase GetLessonStartsUseCase
	logger  Logger
}

func NewHandler(useCase GetLessonStartsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{instructorId}/lesson-starts?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	instructorID, err := strconv.ParseInt(mux.Vars(r)["instructorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/lesson-starts - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	q := LessonStartsQuery{
		Date:     r.URL.Query().Get("date"),
		Duration: r.URL.Query().Get("duration"),
	}
	if err := handlers.Validate(&q); err != nil {
		h.logger.Warn("GET /instructors/{id}/lesson-starts - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	useCaseReq, err := q.ToUseCaseRequest(instructorID)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/lesson-starts - Failed to parse query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getLessonStarts.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/lesson-starts - Invalid input: instructor_id=%d, error=%v", instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getLessonStarts.ErrDateInPast):
			h.logger.Warn("GET /instructors/{id}/lesson-starts - Date in past: instructor_id=%d, date=%s", instructorID, q.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getLessonStarts.ErrInstructorNotFound):
			h.logger.Warn("GET /instructors/{id}/lesson-starts - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		default:
			h.logger.Error("GET /instructors/{id}/lesson-starts - Failed to get lesson starts: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instructors/{id}/lesson-starts - Lesson starts retrieved: instructor_id=%d, date=%s, starts=%d",
		instructorID, q.Date, len(result.Starts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
