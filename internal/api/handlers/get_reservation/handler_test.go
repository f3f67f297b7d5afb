package get_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchoolBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations"
	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-SchoolBooking/pkg/logger"
)

type fakeService struct {
	err    error
	userID int64
}

func (f *fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, UserID: userID}, nil
}

func serve(h *Handler, target string, userID int64) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/reservations/{reservationId}", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		target string
		userID int64
		err    error
		want   int
	}{
		{"ok", "/api/v1/reservations/10", 100, nil, http.StatusOK},
		{"bad id", "/api/v1/reservations/abc", 100, nil, http.StatusBadRequest},
		{"no user", "/api/v1/reservations/10", 0, nil, http.StatusUnauthorized},
		{"not found", "/api/v1/reservations/10", 100, reservations.ErrReservationNotFound, http.StatusNotFound},
		{"forbidden", "/api/v1/reservations/10", 100, reservations.ErrAccessDenied, http.StatusForbidden},
		{"internal", "/api/v1/reservations/10", 100, reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := serve(NewHandler(svc, logger.NewNop()), tt.target, tt.userID)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
