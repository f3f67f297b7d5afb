package submit_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchoolBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations/models"
	submitBooking "github.com/m04kA/SMC-SchoolBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SchoolBooking/pkg/logger"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

type fakeUseCase struct {
	req  *submitBooking.Request
	resp *submitBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *submitBooking.Request) (*submitBooking.Response, error) {
	f.req = req
	return f.resp, f.err
}

func jun(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

const validBody = `{
	"packageId": 3,
	"draftId": "0f8fad5b-d9cb-469f-a165-70867728950e",
	"resourceId": 7,
	"checkIn": "2026-06-04",
	"checkOut": "2026-06-07",
	"rentalDates": ["2026-06-04", "2026-06-05"],
	"lessons": [
		{"date": "2026-06-04", "instructorId": 11, "startTime": "09:00", "durationMinutes": 120},
		{"date": "2026-06-07", "instructorId": 11, "startTime": "13:30", "durationMinutes": 120}
	],
	"paymentMethod": "card"
}`

func post(h *Handler, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func created() *submitBooking.Response {
	return &submitBooking.Response{Reservation: &domain.Reservation{
		ID:         42,
		UserID:     100,
		ResourceID: 7,
		Stay:       domain.MustInterval(jun(4), jun(7)),
		Status:     domain.StatusPending,
	}}
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: created()}
	h := NewHandler(uc, logger.NewNop())

	rec := post(h, validBody, 100)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.req)
	assert.Equal(t, int64(100), uc.req.UserID)
	assert.Equal(t, int64(3), uc.req.PackageID)
	p := uc.req.Payload
	assert.Equal(t, domain.MustInterval(jun(4), jun(7)), p.DateRange)
	assert.Equal(t, []time.Time{jun(4), jun(5)}, p.RentalDates)
	require.Len(t, p.LessonBookings, 2)
	assert.Equal(t, types.TimeString("13:30"), p.LessonBookings[1].StartTime)

	var body models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "2026-06-04", body.CheckIn)
}

func TestHandle_Replayed(t *testing.T) {
	resp := created()
	resp.Replayed = true
	h := NewHandler(&fakeUseCase{resp: resp}, logger.NewNop())

	assert.Equal(t, http.StatusOK, post(h, validBody, 100).Code)
}

func TestHandle_RequestErrors(t *testing.T) {
	h := NewHandler(&fakeUseCase{resp: created()}, logger.NewNop())

	assert.Equal(t, http.StatusUnauthorized, post(h, validBody, 0).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"packageId":`, 100).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, strings.Replace(validBody, `"card"`, `"crypto"`, 1), 100).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, strings.Replace(validBody, `"09:00"`, `"9am"`, 1), 100).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, strings.Replace(validBody, `"2026-06-07",`, `"2026-06-04",`, 1), 100).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, strings.Replace(validBody, `"resourceId": 7`, `"resourceId": 7, "extra": 1`, 1), 100).Code)
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"stale snapshot", &domain.StaleSnapshotConflictError{ResourceID: 7, Reason: "overlap"}, http.StatusConflict},
		{"draft of other user", submitBooking.ErrDraftOwnedByOtherUser, http.StatusConflict},
		{"invalid input", submitBooking.ErrInvalidInput, http.StatusBadRequest},
		{"stay in past", submitBooking.ErrStayInPast, http.StatusBadRequest},
		{"entitlement", submitBooking.ErrEntitlementExceeded, http.StatusUnprocessableEntity},
		{"package not found", submitBooking.ErrPackageNotFound, http.StatusNotFound},
		{"internal", submitBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			assert.Equal(t, tt.want, post(h, validBody, 100).Code)
		})
	}
}
