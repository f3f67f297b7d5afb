package update_reservation_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchoolBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations"
	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-SchoolBooking/pkg/logger"
)

type fakeService struct {
	err error
	req *models.UpdateStatusRequest
}

func (f *fakeService) UpdateStatus(_ context.Context, _ int64, req *models.UpdateStatusRequest) error {
	f.req = req
	return f.err
}

func serve(h *Handler, body string, userID int64) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/reservations/{reservationId}/status", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/10/status", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, logger.NewNop()), `{"status":"confirmed"}`, 1)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, &models.UpdateStatusRequest{UserID: 1, Status: "confirmed"}, svc.req)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID int64
		err    error
		want   int
	}{
		{"no user", `{"status":"confirmed"}`, 0, nil, http.StatusUnauthorized},
		{"cancel via status", `{"status":"cancelled_by_school"}`, 1, nil, http.StatusBadRequest},
		{"not found", `{"status":"confirmed"}`, 1, reservations.ErrReservationNotFound, http.StatusNotFound},
		{"forbidden", `{"status":"confirmed"}`, 1, reservations.ErrAccessDenied, http.StatusForbidden},
		{"transition", `{"status":"completed"}`, 1, reservations.ErrInvalidTransition, http.StatusConflict},
		{"internal", `{"status":"confirmed"}`, 1, reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			assert.Equal(t, tt.want, serve(h, tt.body, tt.userID).Code)
		})
	}
}
