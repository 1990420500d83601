package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	fallback := &DB{}
	tx := &fakeTx{}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, fallback, GetExecutor(ctx, fallback))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, fallback))
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "select", operationOf("SELECT id FROM bookings"))
	assert.Equal(t, "insert", operationOf("\n  INSERT INTO bookings (id) VALUES ($1)"))
	assert.Equal(t, "unknown", operationOf("   "))
}

var _ DBExecutor = (*sql.DB)(nil)
var _ TxExecutor = (*sql.Tx)(nil)
