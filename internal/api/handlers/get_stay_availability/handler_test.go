package get_stay_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getStayAvailability "github.com/m04kA/SMC-SchoolBooking/internal/usecase/get_stay_availability"
	"github.com/m04kA/SMC-SchoolBooking/pkg/logger"
	"github.com/m04kA/SMC-SchoolBooking/pkg/ptr"
)

type fakeUseCase struct {
	req  *getStayAvailability.Request
	resp *getStayAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getStayAvailability.Request) (*getStayAvailability.Response, error) {
	f.req = req
	return f.resp, f.err
}

func jun(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/resources/{resourceId}/availability", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getStayAvailability.Response{
		ResourceID:     7,
		From:           jun(1),
		To:             jun(30),
		BookedDays:     []time.Time{jun(10), jun(11)},
		Nights:         3,
		FirstAvailable: ptr.Ptr(jun(1)),
		Start:          ptr.Ptr(jun(9)),
		RangeFree:      ptr.Ptr(false),
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := serve(h, "/api/v1/resources/7/availability?from=2026-06-01&to=2026-06-30&nights=3&start=2026-06-09")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(7), uc.req.ResourceID)
	assert.Equal(t, 3, uc.req.Nights)
	assert.Equal(t, jun(9), *uc.req.Start)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"2026-06-10", "2026-06-11"}, body.BookedDays)
	assert.Equal(t, "2026-06-01", *body.FirstAvailable)
	assert.False(t, *body.RangeFree)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"bad resource id", "/api/v1/resources/abc/availability", nil, http.StatusBadRequest},
		{"bad date", "/api/v1/resources/7/availability?from=01.06.2026", nil, http.StatusBadRequest},
		{"bad nights", "/api/v1/resources/7/availability?nights=three", nil, http.StatusBadRequest},
		{"invalid input", "/api/v1/resources/7/availability?nights=90", getStayAvailability.ErrInvalidInput, http.StatusBadRequest},
		{"invalid period", "/api/v1/resources/7/availability", getStayAvailability.ErrInvalidPeriod, http.StatusBadRequest},
		{"internal", "/api/v1/resources/7/availability", fmt.Errorf("%w: db", getStayAvailability.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			rec := serve(h, tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
