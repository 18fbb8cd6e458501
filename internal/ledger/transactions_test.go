package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljmnewton/bank-app-final/internal/model"
	"github.com/danieljmnewton/bank-app-final/internal/storage"
)

func testRecord(id string, age time.Duration) model.Transaction {
	return model.Transaction{
		ID:           id,
		ToAccountID:  "acc-1",
		AccountName:  "Alice",
		AccountType:  model.AccountTypeSavings,
		Currency:     model.CurrencySEK,
		Amount:       decimal.NewFromInt(10),
		BalanceAfter: decimal.NewFromInt(10),
		Timestamp:    time.Now().Add(-age),
		Type:         model.TransactionDeposit,
		Category:     model.CategoryNone,
	}
}

func TestTransactionLedger_GetAllOrdersByTimestampDesc(t *testing.T) {
	ctx := context.Background()
	l := NewTransactionLedger(storage.NewMemoryKV())

	// Appended oldest-last on purpose; reads still come back newest-first.
	require.NoError(t, l.Append(ctx, testRecord("mid", 2*time.Hour)))
	require.NoError(t, l.Append(ctx, testRecord("new", 1*time.Hour)))
	require.NoError(t, l.Append(ctx, testRecord("old", 3*time.Hour)))

	records, err := l.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "mid", records[1].ID)
	assert.Equal(t, "old", records[2].ID)
}

func TestTransactionLedger_GetByAccount(t *testing.T) {
	ctx := context.Background()
	l := NewTransactionLedger(storage.NewMemoryKV())

	mine := testRecord("mine", time.Hour)
	asSource := testRecord("as-source", 2*time.Hour)
	asSource.ToAccountID = ""
	asSource.FromAccountID = "acc-1"
	other := testRecord("other", 3*time.Hour)
	other.ToAccountID = "acc-2"

	require.NoError(t, l.Append(ctx, mine))
	require.NoError(t, l.Append(ctx, asSource))
	require.NoError(t, l.Append(ctx, other))

	records, err := l.GetByAccount(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "mine", records[0].ID)
	assert.Equal(t, "as-source", records[1].ID)
}

func TestTransactionLedger_IdempotentRead(t *testing.T) {
	ctx := context.Background()
	l := NewTransactionLedger(storage.NewMemoryKV())
	require.NoError(t, l.Append(ctx, testRecord("a", time.Hour)))
	require.NoError(t, l.Append(ctx, testRecord("b", 2*time.Hour)))

	first, err := l.GetAll(ctx)
	require.NoError(t, err)
	second, err := l.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTransactionLedger_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	l := NewTransactionLedger(kv)
	require.NoError(t, l.Append(ctx, testRecord("a", time.Hour)))

	rehydrated := NewTransactionLedger(kv)
	records, err := rehydrated.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)
}
