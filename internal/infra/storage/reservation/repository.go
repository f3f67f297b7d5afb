package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchoolBooking/pkg/txmanager"
)

const (
	tableReservations = "reservations"
	tableRentals      = "reservation_rentals"
	tableLessons      = "reservation_lessons"
)

var reservationColumns = []string{
	"id",
	"draft_id",
	"user_id",
	"resource_id",
	"check_in",
	"check_out",
	"status",
	"payment_method",
	"voucher_id",
	"occupies_resource",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями проживания
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с днями аренды и занятиями.
// Должен вызываться внутри транзакции: запись идет в три таблицы.
//
// Пересечение с активным бронированием того же ресурса отклоняется exclusion constraint
// и возвращается как ErrOverlap, занятие у уже занятого инструктора как ErrInstructorBusy,
// повторная отправка черновика как ErrDuplicateDraft.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns(
			"draft_id",
			"user_id",
			"resource_id",
			"check_in",
			"check_out",
			"status",
			"payment_method",
			"voucher_id",
			"occupies_resource",
		).
		Values(
			res.DraftID,
			res.UserID,
			res.ResourceID,
			res.Stay.Start,
			res.Stay.End,
			res.Status,
			res.PaymentMethod,
			res.VoucherID,
			!res.NoAccommodation,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		if mapped := classifyPQError(err); mapped != nil {
			return nil, fmt.Errorf("%w: Create - resource=%d: %v", mapped, res.ResourceID, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	// Дни аренды
	if len(res.RentalDates) > 0 {
		insert := psqlbuilder.Insert(tableRentals).Columns("reservation_id", "rental_date")
		for _, d := range res.RentalDates {
			insert = insert.Values(res.ID, d)
		}
		if err := r.exec(ctx, executor, insert, "Create - insert rentals"); err != nil {
			return nil, err
		}
	}

	// Занятия
	if len(res.LessonBookings) > 0 {
		insert := psqlbuilder.Insert(tableLessons).
			Columns("reservation_id", "lesson_date", "instructor_id", "start_time", "duration_minutes", "starts_at", "ends_at")
		for _, b := range res.LessonBookings {
			startsAt, endsAt := b.Period()
			insert = insert.Values(res.ID, b.Date, b.InstructorID, b.StartTime, b.DurationMinutes, startsAt, endsAt)
		}
		if err := r.exec(ctx, executor, insert, "Create - insert lessons"); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// GetByID получает бронирование по ID вместе с днями аренды и занятиями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByDraftID получает бронирование по ID черновика (ключ идемпотентности)
func (r *Repository) GetByDraftID(ctx context.Context, draftID string) (*domain.Reservation, error) {
	return r.getOne(ctx, squirrel.Eq{"draft_id": draftID}, "GetByDraftID")
}

// GetByResource получает бронирования ресурса (без дней аренды и занятий).
// Поддерживает фильтрацию по периоду и включение неактивных бронирований.
//
// Внутри транзакции добавляет FOR UPDATE: используется при отправке бронирования,
// чтобы повторная проверка пересечений видела зафиксированное состояние.
func (r *Repository) GetByResource(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"resource_id": filter.ResourceID})

	// Пересечение с окном [From, To)
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"check_out": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"check_in": *filter.To})
	}

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("check_in ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if mapped := classifyPQError(err); mapped != nil {
			return nil, fmt.Errorf("%w: GetByResource: %v", mapped, err)
		}
		return nil, fmt.Errorf("%w: GetByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByResource - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByResource - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// Cancel отменяет бронирование, освобождая период и время инструкторов.
// Статус и занятия обновляются одним запросом, чтобы отмена не оставляла инструктора занятым.
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Prefix("WITH cancelled AS (").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id), released AS (" +
			"UPDATE " + tableLessons + " SET released = TRUE " +
			"WHERE reservation_id IN (SELECT id FROM cancelled)) " +
			"SELECT COUNT(*) FROM cancelled").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	var cancelled int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cancelled); err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	if cancelled == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// GetActiveLessons получает занятия инструктора на дату из активных бронирований.
// Внутри транзакции добавляет FOR UPDATE, как и GetByResource.
func (r *Repository) GetActiveLessons(ctx context.Context, instructorID int64, date time.Time) ([]domain.LessonBlock, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("lesson_date", "instructor_id", "start_time", "duration_minutes").
		From(tableLessons).
		Where(squirrel.Eq{"instructor_id": instructorID, "lesson_date": date, "released": false}).
		OrderBy("start_time ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.queryLessons(ctx, executor, selectBuilder, "GetActiveLessons")
}

// UpdateStatus обновляет статус бронирования (подтверждение, завершение)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Sqlizer, op string) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}

	if res.RentalDates, err = r.getRentalDates(ctx, executor, res.ID); err != nil {
		return nil, err
	}
	if res.LessonBookings, err = r.getLessons(ctx, executor, res.ID); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *Repository) getRentalDates(ctx context.Context, executor txmanager.DBExecutor, reservationID int64) ([]time.Time, error) {
	query, args, err := psqlbuilder.Select("rental_date").
		From(tableRentals).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("rental_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getRentalDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getRentalDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: getRentalDates - scan row: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getRentalDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

func (r *Repository) getLessons(ctx context.Context, executor txmanager.DBExecutor, reservationID int64) ([]domain.LessonBlock, error) {
	selectBuilder := psqlbuilder.Select("lesson_date", "instructor_id", "start_time", "duration_minutes").
		From(tableLessons).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("lesson_date ASC", "start_time ASC")

	return r.queryLessons(ctx, executor, selectBuilder, "getLessons")
}

func (r *Repository) queryLessons(ctx context.Context, executor txmanager.DBExecutor, builder squirrel.SelectBuilder, op string) ([]domain.LessonBlock, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if mapped := classifyPQError(err); mapped != nil {
			return nil, fmt.Errorf("%w: %s: %v", mapped, op, err)
		}
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	lessons := make([]domain.LessonBlock, 0)
	for rows.Next() {
		var b domain.LessonBlock
		if err := rows.Scan(&b.Date, &b.InstructorID, &b.StartTime, &b.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		lessons = append(lessons, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return lessons, nil
}

func (r *Repository) exec(ctx context.Context, executor txmanager.DBExecutor, builder squirrel.Sqlizer, op string) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build query: %v", ErrBuildQuery, op, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if mapped := classifyPQError(err); mapped != nil {
			return fmt.Errorf("%w: %s: %v", mapped, op, err)
		}
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}
	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var checkIn, checkOut time.Time
	var createdAt, updatedAt sql.NullTime
	var occupiesResource bool

	err := row.Scan(
		&res.ID,
		&res.DraftID,
		&res.UserID,
		&res.ResourceID,
		&checkIn,
		&checkOut,
		&res.Status,
		&res.PaymentMethod,
		&res.VoucherID,
		&occupiesResource,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	stay, err := domain.NewInterval(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	res.Stay = stay
	res.NoAccommodation = !occupiesResource
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
