package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Lists both sides of a transfer, oldest first", func(t *testing.T) {
		// Arrange
		store := NewMemoryStore()
		require.NoError(t, store.Record(ctx, Operation{OccurredAt: base.Add(time.Minute), Kind: OpTransfer, AccountID: 2, CounterAccountID: 1, Amount: decimal.NewNullDecimal(decimal.NewFromInt(5)), Outcome: OutcomeApplied}))
		require.NoError(t, store.Record(ctx, Operation{OccurredAt: base, Kind: OpDeposit, AccountID: 1, Amount: decimal.NewNullDecimal(decimal.NewFromInt(10)), Outcome: OutcomeApplied}))
		require.NoError(t, store.Record(ctx, Operation{OccurredAt: base, Kind: OpDeposit, AccountID: 3, Outcome: OutcomeApplied}))

		// Act
		ops, err := store.ListByAccount(ctx, 1)

		// Assert
		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.Equal(t, OpDeposit, ops[0].Kind)
		assert.Equal(t, OpTransfer, ops[1].Kind)
		assert.NotEqual(t, uuid.Nil, ops[0].ID)
	})

	t.Run("Fills id and time", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Record(ctx, Operation{Kind: OpWithdraw, AccountID: 7, Outcome: OutcomeRefused}))

		ops, err := store.ListByAccount(ctx, 7)

		require.NoError(t, err)
		require.Len(t, ops, 1)
		assert.NotEqual(t, uuid.Nil, ops[0].ID)
		assert.False(t, ops[0].OccurredAt.IsZero())
		assert.False(t, ops[0].Amount.Valid)
	})

	t.Run("Unknown account", func(t *testing.T) {
		ops, err := NewMemoryStore().ListByAccount(ctx, 1)

		require.NoError(t, err)
		assert.NotNil(t, ops)
		assert.Empty(t, ops)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := NewMemoryStore().Record(cancelled, Operation{Kind: OpDeposit})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
