package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
)

type execCall struct {
	query string
	args  []interface{}
}

type fakeExecutor struct {
	calls    []execCall
	affected int64
	err      error
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.calls = append(f.calls, execCall{query: query, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return driverResult(f.affected), nil
}

func (f *fakeExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type fakeTx struct {
	*fakeExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, nil }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

var testDate = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

func TestActiveOccupanciesQuery(t *testing.T) {
	query, args, err := activeOccupanciesQuery(testDate.Add(13*time.Hour), false).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, start_slot, duration_slots FROM bookings WHERE booking_date = $1 AND status IN ($2,$3,$4) ORDER BY created_at ASC, id ASC",
		query)
	assert.Equal(t, []interface{}{testDate, "active", "pending_payment", "confirmed"}, args)

	query, _, err = activeOccupanciesQuery(testDate, true).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY created_at ASC, id ASC FOR UPDATE")
}

func TestListQuery(t *testing.T) {
	start := testDate
	end := testDate.AddDate(0, 0, 6)
	status := domain.StatusConfirmed

	tests := []struct {
		name      string
		filter    domain.BookingsFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "active only by default",
			filter:    domain.BookingsFilter{},
			wantWhere: " WHERE status NOT IN ($1,$2) ORDER BY",
			wantArgs:  []interface{}{"cancelled", "expired"},
		},
		{
			name:      "include inactive",
			filter:    domain.BookingsFilter{IncludeInactive: true},
			wantWhere: " FROM bookings ORDER BY",
		},
		{
			name:      "period and status",
			filter:    domain.BookingsFilter{StartDate: &start, EndDate: &end, Status: &status},
			wantWhere: " WHERE booking_date >= $1 AND booking_date <= $2 AND status = $3 ORDER BY",
			wantArgs:  []interface{}{start, end, status},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := listQuery(tt.filter).ToSql()
			require.NoError(t, err)
			assert.Contains(t, query, tt.wantWhere)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
				return
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}

	query, _, err := listQuery(domain.BookingsFilter{Limit: 50, Offset: 100}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY booking_date ASC, created_at ASC, id ASC LIMIT 50 OFFSET 100")
}

func TestLockDateQuery(t *testing.T) {
	query, args, err := lockDateQuery(testDate).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT pg_advisory_xact_lock(hashtext($1))", query)
	assert.Equal(t, []interface{}{"bookings:2025-10-20"}, args)
}

func TestExpiredPendingQuery(t *testing.T) {
	before := testDate.Add(-24 * time.Hour)

	query, args, err := expiredPendingQuery(before).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE payment_status = $1 AND status = $2 AND created_at < $3 ORDER BY created_at ASC")
	assert.Equal(t, []interface{}{domain.PaymentUnpaid, domain.StatusPendingPayment, before}, args)
}

func TestRepository_LockDate(t *testing.T) {
	exec := &fakeExecutor{}
	repo := NewRepository(exec)

	err := repo.LockDate(context.Background(), testDate)
	assert.ErrorIs(t, err, ErrTransaction)
	assert.Empty(t, exec.calls)

	tx := fakeTx{fakeExecutor: &fakeExecutor{}}
	ctx := dbmetrics.WithTx(context.Background(), tx)

	require.NoError(t, repo.LockDate(ctx, testDate))
	require.Len(t, tx.calls, 1)
	assert.Contains(t, tx.calls[0].query, "pg_advisory_xact_lock")
}

func TestRepository_Create(t *testing.T) {
	exec := &fakeExecutor{affected: 1}
	repo := NewRepository(exec)

	now := time.Date(2025, 10, 18, 9, 30, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:            "3f1c",
		Customer:      domain.Customer{Name: "Asha", Email: "asha@example.com"},
		BookingDate:   testDate,
		StartSlot:     "11:00",
		DurationSlots: 2,
		Status:        domain.StatusPendingPayment,
		PaymentStatus: domain.PaymentUnpaid,
		TotalPrice:    300000,
		Currency:      "INR",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	require.NoError(t, repo.Create(context.Background(), b))
	require.Len(t, exec.calls, 1)

	call := exec.calls[0]
	assert.Contains(t, call.query, "INSERT INTO bookings (id,customer_name,")
	require.Len(t, call.args, len(bookingColumns))
	assert.Equal(t, "3f1c", call.args[0])
	assert.Equal(t, "11:00", call.args[13])
	assert.Equal(t, now, call.args[24])

	// пустой список опций пишется как '{}', а не NULL
	addons, ok := call.args[8].(driver.Valuer)
	require.True(t, ok)
	v, err := addons.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo := NewRepository(&fakeExecutor{err: &pq.Error{Code: uniqueViolation}})

	err := repo.Create(context.Background(), &domain.Booking{ID: "dup"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	repo = NewRepository(&fakeExecutor{err: errors.New("connection reset")})
	err = repo.Create(context.Background(), &domain.Booking{ID: "x"})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_Transitions(t *testing.T) {
	at := time.Date(2025, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("cancel", func(t *testing.T) {
		exec := &fakeExecutor{affected: 1}
		require.NoError(t, NewRepository(exec).Cancel(context.Background(), "b-1", "client asked", at))

		assert.Equal(t,
			"UPDATE bookings SET cancellation_reason = $1, cancelled_at = $2, status = $3, updated_at = $4 WHERE id = $5",
			exec.calls[0].query)
		assert.Equal(t, []interface{}{"client asked", at, domain.StatusCancelled, at, "b-1"}, exec.calls[0].args)
	})

	t.Run("mark paid", func(t *testing.T) {
		exec := &fakeExecutor{affected: 1}
		require.NoError(t, NewRepository(exec).MarkPaid(context.Background(), "b-1", "UPI-77", at))

		assert.Equal(t,
			"UPDATE bookings SET paid_at = $1, payment_reference = $2, payment_status = $3, updated_at = $4 WHERE id = $5",
			exec.calls[0].query)
	})

	t.Run("confirm", func(t *testing.T) {
		exec := &fakeExecutor{affected: 1}
		require.NoError(t, NewRepository(exec).Confirm(context.Background(), "b-1", at))
		assert.Equal(t, []interface{}{at, domain.StatusConfirmed, at, "b-1"}, exec.calls[0].args)
	})

	t.Run("not found", func(t *testing.T) {
		exec := &fakeExecutor{affected: 0}
		err := NewRepository(exec).UpdateStatus(context.Background(), "missing", domain.StatusExpired, at)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetByIDQuery(t *testing.T) {
	query, args, err := getByIDQuery("b-1", true).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "FROM bookings WHERE id = $1 FOR UPDATE")
	assert.Equal(t, []interface{}{"b-1"}, args)

	query, _, err = getByIDQuery("b-1", false).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "FOR UPDATE")
}
