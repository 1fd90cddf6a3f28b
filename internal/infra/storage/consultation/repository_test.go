package consultation

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moshavereh/booking-service/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error   { t.committed = true; return nil }
func (t *fakeTx) Rollback() error { t.rolledBack = true; return nil }

type fakeTxDB struct {
	tx       *fakeTx
	beginErr error
	begun    int
}

func (d *fakeTxDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (d *fakeTxDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (d *fakeTxDB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (d *fakeTxDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	d.begun++
	return d.tx, nil
}

func TestInTx_RollbackOnError(t *testing.T) {
	// сбой второго шага (вставка окон) должен откатить весь Create/Update
	tx := &fakeTx{}
	repo := NewRepository(&fakeTxDB{tx: tx})

	insertErr := errors.New("insert windows failed")
	err := repo.inTx(context.Background(), func(txCtx context.Context) error {
		return insertErr
	})

	assert.ErrorIs(t, err, insertErr)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestInTx_CommitOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeTxDB{tx: tx}
	repo := NewRepository(db)

	err := repo.inTx(context.Background(), func(txCtx context.Context) error {
		// все шаги внутри fn должны видеть транзакцию через контекст
		require.True(t, dbmetrics.IsInTransaction(txCtx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, db.begun)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestInTx_ReusesOuterTransaction(t *testing.T) {
	outerTx := &fakeTx{}
	db := &fakeTxDB{tx: &fakeTx{}}
	repo := NewRepository(db)

	ctx := dbmetrics.WithTx(context.Background(), outerTx)
	err := repo.inTx(ctx, func(txCtx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	// коммит и откат остаются за владельцем внешней транзакции
	assert.Equal(t, 0, db.begun)
	assert.False(t, outerTx.committed)
	assert.False(t, outerTx.rolledBack)
}

func TestInTx_BeginError(t *testing.T) {
	repo := NewRepository(&fakeTxDB{beginErr: errors.New("no connection")})

	err := repo.inTx(context.Background(), func(txCtx context.Context) error {
		t.Fatal("fn must not be called when BeginTx fails")
		return nil
	})

	assert.ErrorIs(t, err, ErrTransaction)
}
