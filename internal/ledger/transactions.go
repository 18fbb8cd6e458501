package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/danieljmnewton/bank-app-final/internal/common"
	"github.com/danieljmnewton/bank-app-final/internal/model"
	"github.com/danieljmnewton/bank-app-final/internal/service"
)

// transactionsKey is the fixed storage key for the transactions blob.
const transactionsKey = "bankapp_final.transactions"

// TransactionLedger owns the authoritative append-only record list. Records
// are never mutated or removed once written.
type TransactionLedger struct {
	kv      service.KVStore
	records []model.Transaction
	loaded  bool
}

// NewTransactionLedger creates a ledger backed by kv.
func NewTransactionLedger(kv service.KVStore) *TransactionLedger {
	return &TransactionLedger{kv: kv}
}

// ensureLoaded hydrates the record list at most once per ledger instance.
func (l *TransactionLedger) ensureLoaded(ctx context.Context) error {
	if l.loaded {
		return nil
	}

	raw, ok, err := l.kv.Get(ctx, transactionsKey)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	l.records = nil
	if ok && len(raw) > 0 {
		var stored []model.Transaction
		if err := json.Unmarshal(raw, &stored); err != nil {
			return fmt.Errorf("%w: corrupt transactions blob: %v", common.ErrStorage, err)
		}
		l.records = stored
	}
	l.loaded = true
	slog.Debug("transaction ledger hydrated", "count", len(l.records))
	return nil
}

// save persists the full record list.
func (l *TransactionLedger) save(ctx context.Context) error {
	raw, err := json.Marshal(l.records)
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	if err := l.kv.Set(ctx, transactionsKey, raw); err != nil {
		return fmt.Errorf("failed to persist transactions: %w", err)
	}
	return nil
}

// Append adds a record and persists the full list. The record's shape is the
// caller's responsibility; the ledger does not validate it.
func (l *TransactionLedger) Append(ctx context.Context, record model.Transaction) error {
	if err := l.ensureLoaded(ctx); err != nil {
		return err
	}

	l.records = append(l.records, record)
	if err := l.save(ctx); err != nil {
		return err
	}

	slog.Debug("transaction recorded",
		"id", record.ID,
		"type", record.Type,
		"amount", record.Amount,
		"total", len(l.records))
	return nil
}

// GetAll returns all records ordered by timestamp descending, most recent
// first.
func (l *TransactionLedger) GetAll(ctx context.Context) ([]model.Transaction, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]model.Transaction, len(l.records))
	copy(out, l.records)
	sortByTimestampDesc(out)
	return out, nil
}

// GetByAccount returns records where the account is either the source or the
// destination, most recent first.
func (l *TransactionLedger) GetByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	var out []model.Transaction
	for _, r := range l.records {
		if r.FromAccountID == accountID || r.ToAccountID == accountID {
			out = append(out, r)
		}
	}
	sortByTimestampDesc(out)
	return out, nil
}

func sortByTimestampDesc(records []model.Transaction) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
}
