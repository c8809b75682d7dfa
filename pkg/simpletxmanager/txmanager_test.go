package simpletxmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TenantBookingService/pkg/pgerrors"
)

type stubTx struct {
	dbmetrics.DBExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func TestRun_ReusesOuterTransaction(t *testing.T) {
	// db не нужен: внутри транзакции BeginTx не вызывается
	m := NewTransactionManager(nil)
	ctx := dbmetrics.WithTx(context.Background(), stubTx{})

	called := false
	err := m.DoSerializable(ctx, func(inner context.Context) error {
		called = true
		tx, ok := dbmetrics.TxFromContext(inner)
		require.True(t, ok)
		assert.Equal(t, stubTx{}, tx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)

	fnErr := errors.New("boom")
	assert.ErrorIs(t, m.Do(ctx, func(context.Context) error { return fnErr }), fnErr)
}

func TestMarkSerialization(t *testing.T) {
	t.Run("PostgresSerializationFailure", func(t *testing.T) {
		err := markSerialization(fmt.Errorf("%w: %w", ErrCommitTx, &pq.Error{Code: "40001"}))
		assert.ErrorIs(t, err, pgerrors.ErrSerializationFailure)
		assert.ErrorIs(t, err, ErrCommitTx)
	})

	t.Run("Deadlock", func(t *testing.T) {
		err := markSerialization(&pq.Error{Code: "40P01"})
		assert.ErrorIs(t, err, pgerrors.ErrSerializationFailure)
	})

	t.Run("AlreadyMarked", func(t *testing.T) {
		original := fmt.Errorf("%w: retry", pgerrors.ErrSerializationFailure)
		assert.Same(t, original, markSerialization(original))
	})

	t.Run("OtherError", func(t *testing.T) {
		original := errors.New("syntax error")
		err := markSerialization(original)
		assert.Same(t, original, err)
		assert.NotErrorIs(t, err, pgerrors.ErrSerializationFailure)
	})
}
