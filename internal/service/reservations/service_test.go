package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SchoolBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SchoolBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-SchoolBooking/pkg/logger"
	"github.com/m04kA/SMC-SchoolBooking/pkg/ptr"
)

const (
	ownerID = int64(100)
	staffID = int64(1)
	otherID = int64(200)
)

type fakeRepo struct {
	byID      map[int64]*domain.Reservation
	listed    []*domain.Reservation
	filter    domain.ResourceReservationsFilter
	getErr    error
	cancelled map[int64]domain.ReservationStatus
	updated   map[int64]domain.ReservationStatus
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	f := &fakeRepo{
		byID:      map[int64]*domain.Reservation{},
		cancelled: map[int64]domain.ReservationStatus{},
		updated:   map[int64]domain.ReservationStatus{},
	}
	for _, r := range reservations {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) GetByResource(_ context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	f.filter = filter
	return f.listed, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	f.updated[id] = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, status domain.ReservationStatus, _ *string) error {
	f.cancelled[id] = status
	return nil
}

type fakeCache struct {
	invalidated int
}

func (f *fakeCache) Invalidate(context.Context, time.Time, int64) error {
	f.invalidated++
	return nil
}

func jun(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

func pending() *domain.Reservation {
	return &domain.Reservation{
		ID:          10,
		DraftID:     "0f8fad5b-d9cb-469f-a165-70867728950e",
		UserID:      ownerID,
		ResourceID:  7,
		Stay:        domain.MustInterval(jun(4), jun(7)),
		Status:      domain.StatusPending,
		RentalDates: []time.Time{jun(4)},
		LessonBookings: []domain.LessonBlock{
			{Date: jun(5), InstructorID: 11, StartTime: "09:00", DurationMinutes: 120},
		},
	}
}

func newTestService(repo *fakeRepo, cache SlotCache) *Service {
	return NewService(repo, cache, []int64{staffID}, logger.NewNop())
}

func TestGetByID(t *testing.T) {
	svc := newTestService(newFakeRepo(pending()), nil)

	resp, err := svc.GetByID(context.Background(), 10, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-04", resp.CheckIn)
	assert.Equal(t, "2026-06-07", resp.CheckOut)
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, []string{"2026-06-04"}, resp.RentalDates)
	assert.Equal(t, "09:00", resp.Lessons[0].StartTime)

	_, err = svc.GetByID(context.Background(), 10, staffID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 10, otherID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 99, ownerID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetByID_RepositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.getErr = errors.New("db down")
	svc := newTestService(repo, nil)

	_, err := svc.GetByID(context.Background(), 10, ownerID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCancel(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		repo := newFakeRepo(pending())
		cache := &fakeCache{}
		svc := newTestService(repo, cache)

		err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{UserID: ownerID})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByUser, repo.cancelled[10])
		assert.Equal(t, 1, cache.invalidated)
	})

	t.Run("staff", func(t *testing.T) {
		repo := newFakeRepo(pending())
		svc := newTestService(repo, nil)

		err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{
			UserID:             staffID,
			CancellationReason: ptr.Ptr("storm warning"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledBySchool, repo.cancelled[10])
	})

	t.Run("stranger", func(t *testing.T) {
		svc := newTestService(newFakeRepo(pending()), nil)
		err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{UserID: otherID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already cancelled", func(t *testing.T) {
		res := pending()
		res.Status = domain.StatusCancelledByUser
		svc := newTestService(newFakeRepo(res), nil)

		err := svc.Cancel(context.Background(), 10, &models.CancelReservationRequest{UserID: ownerID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("confirm pending", func(t *testing.T) {
		repo := newFakeRepo(pending())
		svc := newTestService(repo, nil)

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{UserID: staffID, Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, repo.updated[10])
	})

	t.Run("skip confirmation", func(t *testing.T) {
		svc := newTestService(newFakeRepo(pending()), nil)
		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{UserID: staffID, Status: "completed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("not staff", func(t *testing.T) {
		svc := newTestService(newFakeRepo(pending()), nil)
		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{UserID: ownerID, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := newTestService(newFakeRepo(pending()), nil)
		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{UserID: staffID, Status: "no_show"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListByResource(t *testing.T) {
	repo := newFakeRepo()
	repo.listed = []*domain.Reservation{pending()}
	svc := newTestService(repo, nil)

	from, to := jun(1), jun(30)
	resp, err := svc.ListByResource(context.Background(), &models.ListByResourceRequest{
		UserID:     staffID,
		ResourceID: 7,
		From:       &from,
		To:         &to,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(7), repo.filter.ResourceID)
	assert.False(t, repo.filter.IncludeInactive)

	_, err = svc.ListByResource(context.Background(), &models.ListByResourceRequest{UserID: ownerID, ResourceID: 7})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListByResource(context.Background(), &models.ListByResourceRequest{
		UserID: staffID, ResourceID: 7, From: &to, To: &from,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
