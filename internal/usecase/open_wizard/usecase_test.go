package open_wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/engine/wizard"
	"github.com/m04kA/SMC-SchoolBooking/internal/integrations/packageservice"
	"github.com/m04kA/SMC-SchoolBooking/pkg/logger"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

type fakePackages struct {
	pkg *domain.Package
	err error
}

func (f *fakePackages) GetPackage(context.Context, int64) (*domain.Package, error) {
	return f.pkg, f.err
}

type fakeRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeRepo) GetByResource(context.Context, domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	return f.reservations, f.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func jun(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

func weekPackage() *domain.Package {
	return &domain.Package{
		ID:          3,
		Name:        "Ski week",
		Entitlement: domain.Entitlement{Nights: 3, RentalDays: 2, LessonHours: 4},
		Composition: domain.PackageComposition{Accommodation: true, Rentals: true, Lessons: true, FixedNights: 3},
	}
}

func newTestUseCase(packages PackageClient, repo ReservationRepository) *UseCase {
	uc := NewUseCase(packages, repo, Settings{
		LessonBlockMinutes: 120,
		PresetStarts:       []types.TimeString{"09:00", "11:00", "13:30", "15:30"},
		SearchWindowDays:   365,
		Location:           time.UTC,
	}, logger.NewNop())
	uc.timeProvider = fixedTime{now: jun(1).Add(9 * time.Hour)}
	return uc
}

func TestExecute_PreselectsFirstFreeStay(t *testing.T) {
	repo := &fakeRepo{reservations: []*domain.Reservation{
		{ResourceID: 7, Status: domain.StatusConfirmed, Stay: domain.MustInterval(jun(1), jun(4))},
	}}
	uc := newTestUseCase(&fakePackages{pkg: weekPackage()}, repo)

	resp, err := uc.Execute(context.Background(), &Request{PackageID: 3, ResourceID: 7})
	require.NoError(t, err)

	w := resp.Wizard
	assert.Equal(t, []wizard.Step{wizard.StepDates, wizard.StepRentals, wizard.StepLessons, wizard.StepPayment}, w.Steps())
	assert.Equal(t, wizard.StepDates, w.Current())
	assert.Equal(t, 2, w.TotalBlocks())
	assert.False(t, w.NoAvailability())

	draft := w.Draft()
	assert.NotEmpty(t, draft.ID)
	assert.Equal(t, int64(7), draft.ResourceID)
	require.NotNil(t, draft.Stay)
	assert.Equal(t, jun(4), draft.Stay.Start)
	assert.Equal(t, jun(7), draft.Stay.End)
	assert.Equal(t, []domain.Interval{domain.MustInterval(jun(1), jun(4))}, resp.Snapshot)
}

func TestExecute_KeepsDraftID(t *testing.T) {
	uc := newTestUseCase(&fakePackages{pkg: weekPackage()}, &fakeRepo{})

	const draftID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	resp, err := uc.Execute(context.Background(), &Request{PackageID: 3, ResourceID: 7, DraftID: draftID})
	require.NoError(t, err)
	assert.Equal(t, draftID, resp.Wizard.Draft().ID)
	assert.Equal(t, jun(1), resp.Wizard.Draft().Stay.Start)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		uc := newTestUseCase(&fakePackages{}, &fakeRepo{})
		_, err := uc.Execute(context.Background(), &Request{PackageID: 3})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{PackageID: 3, ResourceID: 7, DraftID: "draft-1"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("package not found", func(t *testing.T) {
		uc := newTestUseCase(&fakePackages{err: packageservice.ErrPackageNotFound}, &fakeRepo{})
		_, err := uc.Execute(context.Background(), &Request{PackageID: 3, ResourceID: 7})
		assert.ErrorIs(t, err, ErrPackageNotFound)
	})

	t.Run("empty package", func(t *testing.T) {
		pkg := &domain.Package{ID: 3, Entitlement: domain.Entitlement{Nights: 2}}
		uc := newTestUseCase(&fakePackages{pkg: pkg}, &fakeRepo{})
		_, err := uc.Execute(context.Background(), &Request{PackageID: 3, ResourceID: 7})
		assert.ErrorIs(t, err, ErrInvalidPackage)
	})

	t.Run("repository failure", func(t *testing.T) {
		uc := newTestUseCase(&fakePackages{pkg: weekPackage()}, &fakeRepo{err: errors.New("db down")})
		_, err := uc.Execute(context.Background(), &Request{PackageID: 3, ResourceID: 7})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
