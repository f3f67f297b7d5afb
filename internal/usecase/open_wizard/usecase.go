package open_wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/internal/engine/availability"
	"github.com/m04kA/SMC-SchoolBooking/internal/engine/wizard"
	"github.com/m04kA/SMC-SchoolBooking/internal/integrations/packageservice"
)

// UseCase use case для открытия мастера бронирования по пакету
type UseCase struct {
	packageClient   PackageClient
	reservationRepo ReservationRepository
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	packageClient PackageClient,
	reservationRepo ReservationRepository,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &UseCase{
		packageClient:   packageClient,
		reservationRepo: reservationRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("OpenWizard: package=%d, resource=%d", req.PackageID, req.ResourceID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("OpenWizard: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем пакет (квоты копируются в черновик по значению)
	pkg, err := uc.packageClient.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packageservice.ErrPackageNotFound) {
			uc.logger.Warn("OpenWizard: package %d not found", req.PackageID)
			return nil, fmt.Errorf("%w: id=%d", ErrPackageNotFound, req.PackageID)
		}
		uc.logger.Error("OpenWizard: failed to get package %d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	// 3. Снимок занятости ресурса начиная с сегодняшнего дня
	loc := uc.settings.Location
	today := domain.DateIn(uc.timeProvider.Now().In(loc), loc)

	reservations, err := uc.reservationRepo.GetByResource(ctx, domain.ResourceReservationsFilter{
		ResourceID: req.ResourceID,
		From:       &today,
	})
	if err != nil {
		uc.logger.Error("OpenWizard: failed to get reservations for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	active := make([]domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		res := *r
		res.Stay = domain.IntervalIn(r.Stay, loc)
		active = append(active, res)
	}
	snapshot := availability.Build(active)

	// 4. Открываем мастер и предвыбираем первый свободный период
	w, err := wizard.New(wizard.Options{
		DraftID:            req.DraftID,
		ResourceID:         req.ResourceID,
		Entitlement:        pkg.Entitlement,
		Composition:        pkg.Composition,
		LessonBlockMinutes: uc.settings.LessonBlockMinutes,
		PresetStarts:       uc.settings.PresetStarts,
		Snapshot:           snapshot,
		SearchWindowDays:   uc.settings.SearchWindowDays,
	})
	if err != nil {
		if errors.Is(err, wizard.ErrEmptyComposition) || errors.Is(err, domain.ErrInvalidEntitlement) {
			uc.logger.Warn("OpenWizard: package %d cannot be booked: %v", req.PackageID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
		}
		uc.logger.Error("OpenWizard: failed to open wizard: %v", err)
		return nil, fmt.Errorf("%w: failed to open wizard: %v", ErrInternal, err)
	}
	w = w.WithDefaultStay(today)

	if w.NoAvailability() {
		uc.logger.Warn("OpenWizard: resource=%d has no free window for package=%d", req.ResourceID, req.PackageID)
	}

	uc.logger.Info("OpenWizard: draft=%s opened, steps=%v, lesson blocks=%d",
		w.Draft().ID, w.Steps(), w.TotalBlocks())

	return &Response{
		Package:  pkg,
		Wizard:   w,
		Snapshot: snapshot.Intervals(),
	}, nil
}
