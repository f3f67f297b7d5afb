package open_wizard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchoolBooking/internal/api/handlers"
	openWizard "github.com/m04kA/SMC-SchoolBooking/internal/usecase/open_wizard"
)

const (
	msgInvalidPackageID = "некорректный ID пакета"
	msgInvalidQuery     = "некорректные параметры запроса: требуется resourceId, draftId должен быть UUID"
	msgInvalidInput     = "некорректные входные данные"
	msgPackageNotFound  = "пакет не найден"
	msgInvalidPackage   = "пакет нельзя забронировать"
)

type Handler struct {
	useCase OpenWizardUseCase
	logger  Logger
}

func NewHandler(useCase OpenWizardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/packages/{packageId}/wizard?resourceId=R
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := strconv.ParseInt(mux.Vars(r)["packageId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /packages/{id}/wizard - Invalid package ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	q := WizardQuery{
		ResourceID: r.URL.Query().Get("resourceId"),
		DraftID:    r.URL.Query().Get("draftId"),
	}
	if err := handlers.Validate(&q); err != nil {
		h.logger.Warn("GET /packages/{id}/wizard - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	useCaseReq, err := q.ToUseCaseRequest(packageID)
	if err != nil {
		h.logger.Warn("GET /packages/{id}/wizard - Failed to parse query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, openWizard.ErrInvalidInput):
			h.logger.Warn("GET /packages/{id}/wizard - Invalid input: package_id=%d, error=%v", packageID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, openWizard.ErrPackageNotFound):
			h.logger.Warn("GET /packages/{id}/wizard - Package not found: package_id=%d", packageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, openWizard.ErrInvalidPackage):
			h.logger.Warn("GET /packages/{id}/wizard - Package cannot be booked: package_id=%d, error=%v", packageID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidPackage)

		default:
			h.logger.Error("GET /packages/{id}/wizard - Failed to open wizard: package_id=%d, error=%v", packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /packages/{id}/wizard - Wizard opened: package_id=%d, resource_id=%d, draft_id=%s",
		packageID, useCaseReq.ResourceID, result.Wizard.Draft().ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
