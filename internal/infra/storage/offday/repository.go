package offday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

const (
	table           = "off_days"
	uniqueViolation = "23505"
)

// Repository репозиторий выходных дней студии
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет выходной
func (r *Repository) Create(ctx context.Context, offDay domain.OffDay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("day", "reason", "created_at").
		Values(domain.DateOnly(offDay.Date), offDay.Reason, offDay.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrOffDayExists, domain.DateKey(offDay.Date))
		}
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет выходной
func (r *Repository) Delete(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"day": domain.DateOnly(date)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOffDayNotFound
	}

	return nil
}

// ListRange возвращает выходные в диапазоне дат включительно; nil граница не ограничивает
func (r *Repository) ListRange(ctx context.Context, from, to *time.Time) ([]domain.OffDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := rangeQuery(from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	offDays := make([]domain.OffDay, 0)
	for rows.Next() {
		var od domain.OffDay
		if err := rows.Scan(&od.Date, &od.Reason, &od.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListRange - scan row: %w", ErrScanRow, err)
		}
		od.Date = domain.DateOnly(od.Date)
		offDays = append(offDays, od)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRange - rows error: %w", ErrScanRow, err)
	}

	return offDays, nil
}

// Exists проверяет, объявлен ли выходной на дату
func (r *Repository) Exists(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := existsQuery(date).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

func rangeQuery(from, to *time.Time) squirrel.SelectBuilder {
	q := psqlbuilder.Select("day", "reason", "created_at").From(table)

	if from != nil {
		q = q.Where(squirrel.GtOrEq{"day": domain.DateOnly(*from)})
	}
	if to != nil {
		q = q.Where(squirrel.LtOrEq{"day": domain.DateOnly(*to)})
	}

	return q.OrderBy("day ASC")
}

func existsQuery(date time.Time) squirrel.SelectBuilder {
	sub := psqlbuilder.Select("1").From(table).Where(squirrel.Eq{"day": domain.DateOnly(date)})
	return psqlbuilder.Select().Column(squirrel.Expr("EXISTS (?)", sub))
}
