package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"customer_company",
	"setup",
	"people",
	"package",
	"addons",
	"frequency",
	"requirements",
	"referral",
	"booking_date",
	"start_slot",
	"duration_slots",
	"status",
	"payment_status",
	"payment_reference",
	"total_price",
	"currency",
	"cancellation_reason",
	"cancelled_at",
	"paid_at",
	"confirmed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// ID и created_at выставляет вызывающий код.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertQuery(booking).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicateID, booking.ID)
		}
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := getByIDQuery(id, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру админки
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveOccupancies возвращает занятость активных бронирований на дату
// в порядке создания. Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetActiveOccupancies(ctx context.Context, date time.Time) ([]domain.Occupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := activeOccupanciesQuery(date, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOccupancies - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOccupancies - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	occupancies := make([]domain.Occupancy, 0)
	for rows.Next() {
		var occ domain.Occupancy
		if err := rows.Scan(&occ.BookingID, &occ.Start, &occ.Duration); err != nil {
			return nil, fmt.Errorf("%w: GetActiveOccupancies - scan row: %w", ErrScanRow, err)
		}
		occupancies = append(occupancies, occ)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveOccupancies - rows error: %w", ErrScanRow, err)
	}

	return occupancies, nil
}

// LockDate берет транзакционную advisory-блокировку на дату.
// FOR UPDATE не защищает от вставки в пустой день, поэтому блокируем саму дату.
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: LockDate", ErrTransaction)
	}

	query, args, err := lockDateQuery(date).ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockDate - build query: %w", ErrBuildQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockDate - execute: %w", ErrExecQuery, err)
	}

	return nil
}

// CountActiveOnDate считает активные бронирования на дату
func (r *Repository) CountActiveOnDate(ctx context.Context, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"booking_date": domain.DateOnly(date), "status": statusStrings(domain.ActiveStatuses)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveOnDate - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveOnDate - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// ListExpiredPending возвращает неоплаченные бронирования, созданные раньше before
func (r *Repository) ListExpiredPending(ctx context.Context, before time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := expiredPendingQuery(before).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredPending - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredPending - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, at time.Time) error {
	return r.update(ctx, "UpdateStatus", id, squirrel.Eq{"status": status}, at)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id string, reason string, at time.Time) error {
	return r.update(ctx, "Cancel", id, squirrel.Eq{
		"status":              domain.StatusCancelled,
		"cancellation_reason": reason,
		"cancelled_at":        at,
	}, at)
}

// MarkPaid отмечает оплату, статус бронирования не меняется
func (r *Repository) MarkPaid(ctx context.Context, id string, reference string, at time.Time) error {
	return r.update(ctx, "MarkPaid", id, squirrel.Eq{
		"payment_status":    domain.PaymentPaid,
		"payment_reference": reference,
		"paid_at":           at,
	}, at)
}

// Confirm подтверждает бронирование
func (r *Repository) Confirm(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, "Confirm", id, squirrel.Eq{
		"status":       domain.StatusConfirmed,
		"confirmed_at": at,
	}, at)
}

func (r *Repository) update(ctx context.Context, op string, id string, set squirrel.Eq, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateQuery(id, set, at).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func insertQuery(b *domain.Booking) squirrel.InsertBuilder {
	addons := b.Addons
	if addons == nil {
		addons = []string{}
	}

	return psqlbuilder.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			b.ID,
			b.Customer.Name,
			b.Customer.Email,
			b.Customer.Phone,
			b.Customer.Company,
			b.Setup,
			b.People,
			b.Package,
			pq.Array(addons),
			b.Frequency,
			b.Requirements,
			b.Referral,
			domain.DateOnly(b.BookingDate),
			string(b.StartSlot),
			b.DurationSlots,
			b.Status,
			b.PaymentStatus,
			b.PaymentReference,
			b.TotalPrice,
			b.Currency,
			b.CancellationReason,
			b.CancelledAt,
			b.PaidAt,
			b.ConfirmedAt,
			b.CreatedAt,
			b.UpdatedAt,
		)
}

func getByIDQuery(id string, forUpdate bool) squirrel.SelectBuilder {
	q := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

func listQuery(filter domain.BookingsFilter) squirrel.SelectBuilder {
	q := psqlbuilder.Select(bookingColumns...).From("bookings")

	// Фильтрация по периоду
	if filter.StartDate != nil {
		q = q.Where(squirrel.GtOrEq{"booking_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		q = q.Where(squirrel.LtOrEq{"booking_date": domain.DateOnly(*filter.EndDate)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		q = q.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	q = q.OrderBy("booking_date ASC", "created_at ASC", "id ASC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	return q
}

func activeOccupanciesQuery(date time.Time, forUpdate bool) squirrel.SelectBuilder {
	q := psqlbuilder.Select("id", "start_slot", "duration_slots").
		From("bookings").
		Where(squirrel.Eq{
			"booking_date": domain.DateOnly(date),
			"status":       statusStrings(domain.ActiveStatuses),
		}).
		OrderBy("created_at ASC", "id ASC")

	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

func lockDateQuery(date time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", "bookings:"+domain.DateKey(date)))
}

func expiredPendingQuery(before time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"status":         domain.StatusPendingPayment,
			"payment_status": domain.PaymentUnpaid,
		}).
		Where(squirrel.Lt{"created_at": before}).
		OrderBy("created_at ASC")
}

func updateQuery(id string, set squirrel.Eq, at time.Time) squirrel.UpdateBuilder {
	return psqlbuilder.Update("bookings").
		SetMap(set).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var addons pq.StringArray

	err := row.Scan(
		&b.ID,
		&b.Customer.Name,
		&b.Customer.Email,
		&b.Customer.Phone,
		&b.Customer.Company,
		&b.Setup,
		&b.People,
		&b.Package,
		&addons,
		&b.Frequency,
		&b.Requirements,
		&b.Referral,
		&b.BookingDate,
		&b.StartSlot,
		&b.DurationSlots,
		&b.Status,
		&b.PaymentStatus,
		&b.PaymentReference,
		&b.TotalPrice,
		&b.Currency,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.PaidAt,
		&b.ConfirmedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Addons = []string(addons)
	if b.Addons == nil {
		b.Addons = []string{}
	}
	b.BookingDate = domain.DateOnly(b.BookingDate)

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
