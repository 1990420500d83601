package offday

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

type fakeExecutor struct {
	queries  []string
	args     [][]interface{}
	affected int64
	err      error
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
	return rowsAffected(f.affected), nil
}

func (f *fakeExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type rowsAffected int64

func (r rowsAffected) LastInsertId() (int64, error) { return 0, nil }
func (r rowsAffected) RowsAffected() (int64, error) { return int64(r), nil }

var christmas = time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

func TestRangeQuery(t *testing.T) {
	from := christmas.AddDate(0, 0, -7)

	query, args, err := rangeQuery(&from, &christmas).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT day, reason, created_at FROM off_days WHERE day >= $1 AND day <= $2 ORDER BY day ASC", query)
	assert.Equal(t, []interface{}{from, christmas}, args)

	query, _, err = rangeQuery(nil, nil).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT day, reason, created_at FROM off_days ORDER BY day ASC", query)
}

func TestExistsQuery(t *testing.T) {
	query, args, err := existsQuery(christmas.Add(10 * time.Hour)).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT EXISTS (SELECT 1 FROM off_days WHERE day = $1)", query)
	assert.Equal(t, []interface{}{christmas}, args)
}

func TestRepository_Create(t *testing.T) {
	exec := &fakeExecutor{affected: 1}
	now := time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)

	err := NewRepository(exec).Create(context.Background(), domain.OffDay{Date: christmas, Reason: "holiday", CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO off_days (day,reason,created_at) VALUES ($1,$2,$3)", exec.queries[0])
	assert.Equal(t, []interface{}{christmas, "holiday", now}, exec.args[0])

	exec = &fakeExecutor{err: &pq.Error{Code: uniqueViolation}}
	err = NewRepository(exec).Create(context.Background(), domain.OffDay{Date: christmas})
	assert.ErrorIs(t, err, ErrOffDayExists)
}

func TestRepository_Delete(t *testing.T) {
	exec := &fakeExecutor{affected: 1}
	require.NoError(t, NewRepository(exec).Delete(context.Background(), christmas))
	assert.Equal(t, "DELETE FROM off_days WHERE day = $1", exec.queries[0])

	err := NewRepository(&fakeExecutor{}).Delete(context.Background(), christmas)
	assert.ErrorIs(t, err, ErrOffDayNotFound)

	err = NewRepository(&fakeExecutor{err: errors.New("boom")}).Delete(context.Background(), christmas)
	assert.ErrorIs(t, err, ErrExecQuery)
}
