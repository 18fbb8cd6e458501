// Package ledger implements the account store, the append-only transaction
// ledger, and the engine that composes them into deposit, withdrawal and
// transfer operations.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/danieljmnewton/bank-app-final/internal/common"
	"github.com/danieljmnewton/bank-app-final/internal/model"
	"github.com/danieljmnewton/bank-app-final/internal/service"
)

// accountsKey is the fixed storage key for the accounts blob.
const accountsKey = "bankapp.accounts"

// AccountStore owns the authoritative account list. It hydrates lazily from
// the key-value store and writes the full list back after every mutation.
type AccountStore struct {
	kv       service.KVStore
	accounts []*model.Account
	loaded   bool
}

// NewAccountStore creates a store backed by kv. Nothing is read until the
// first operation.
func NewAccountStore(kv service.KVStore) *AccountStore {
	return &AccountStore{kv: kv}
}

// ensureLoaded hydrates the account list at most once per store instance.
func (s *AccountStore) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, ok, err := s.kv.Get(ctx, accountsKey)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	s.accounts = nil
	if ok && len(raw) > 0 {
		var stored []*model.Account
		if err := json.Unmarshal(raw, &stored); err != nil {
			return fmt.Errorf("%w: corrupt accounts blob: %v", common.ErrStorage, err)
		}
		s.accounts = stored
	}
	s.loaded = true
	slog.Debug("account store hydrated", "count", len(s.accounts))
	return nil
}

// save persists the full account list. Write-through, no batching.
func (s *AccountStore) save(ctx context.Context) error {
	raw, err := json.Marshal(s.accounts)
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	if err := s.kv.Set(ctx, accountsKey, raw); err != nil {
		return fmt.Errorf("failed to persist accounts: %w", err)
	}
	return nil
}

// find returns the live account matching (name, type), comparing names
// case-insensitively.
func (s *AccountStore) find(name string, accountType model.AccountType) *model.Account {
	for _, a := range s.accounts {
		if a.Type == accountType && strings.EqualFold(a.Name, name) {
			return a
		}
	}
	return nil
}

// byID returns the live account with the given identifier.
func (s *AccountStore) byID(id string) *model.Account {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Create validates the request, generates a fresh identifier and persists
// the new account. The (name, type) pair must be unique.
func (s *AccountStore) Create(ctx context.Context, name string, accountType model.AccountType, currency model.Currency, initialBalance decimal.Decimal) (*model.Account, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: account name is required", common.ErrValidation)
	}
	if accountType == model.AccountTypeNone || accountType == "" {
		return nil, fmt.Errorf("%w: select an account type", common.ErrValidation)
	}
	if currency == model.CurrencyNone || currency == "" {
		return nil, fmt.Errorf("%w: select a currency", common.ErrValidation)
	}
	if initialBalance.Sign() < 0 {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", common.ErrValidation)
	}
	if s.find(name, accountType) != nil {
		return nil, fmt.Errorf("%w: %q (%s)", common.ErrConflict, name, accountType.Label())
	}

	account := model.NewAccount(name, accountType, currency, initialBalance)
	s.accounts = append(s.accounts, account)
	if err := s.save(ctx); err != nil {
		return nil, err
	}

	slog.Info("account created",
		"id", account.ID,
		"name", account.Name,
		"type", account.Type,
		"balance", account.Balance)
	out := *account
	return &out, nil
}

// List returns snapshot copies of all accounts, never the live collection.
func (s *AccountStore) List(ctx context.Context) ([]model.Account, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]model.Account, len(s.accounts))
	for i, a := range s.accounts {
		out[i] = *a
	}
	return out, nil
}

// GetByID returns a copy of the matching account, or nil when absent.
// Absence is a normal case, not an error.
func (s *AccountStore) GetByID(ctx context.Context, id string) (*model.Account, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	account := s.byID(id)
	if account == nil {
		return nil, nil
	}
	out := *account
	return &out, nil
}

// GetByNameAndType returns a copy of the account matching (name, type), or
// nil when absent. Name comparison is case-insensitive.
func (s *AccountStore) GetByNameAndType(ctx context.Context, name string, accountType model.AccountType) (*model.Account, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	account := s.find(name, accountType)
	if account == nil {
		return nil, nil
	}
	out := *account
	return &out, nil
}

// Deposit adds amount to the account's balance and persists. Returns a copy
// of the updated account.
func (s *AccountStore) Deposit(ctx context.Context, id string, amount decimal.Decimal) (*model.Account, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	account := s.byID(id)
	if account == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}
	if err := account.Deposit(amount); err != nil {
		return nil, err
	}
	if err := s.save(ctx); err != nil {
		return nil, err
	}

	slog.Debug("deposit completed", "account", account.ID, "amount", amount, "balance", account.Balance)
	out := *account
	return &out, nil
}

// Withdraw removes amount from the account's balance and persists. Returns a
// copy of the updated account.
func (s *AccountStore) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*model.Account, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	account := s.byID(id)
	if account == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}
	if err := account.Withdraw(amount); err != nil {
		return nil, err
	}
	if err := s.save(ctx); err != nil {
		return nil, err
	}

	slog.Debug("withdrawal completed", "account", account.ID, "amount", amount, "balance", account.Balance)
	out := *account
	return &out, nil
}

// Transfer moves amount between two accounts of the same currency as one
// logical unit, persisted once both legs succeed. Returns copies of the
// updated source and destination accounts.
func (s *AccountStore) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*model.Account, *model.Account, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, nil, err
	}

	if fromID == toID {
		return nil, nil, fmt.Errorf("%w: from and to accounts must be different", common.ErrValidation)
	}
	from := s.byID(fromID)
	if from == nil {
		return nil, nil, fmt.Errorf("%w: from account %s", common.ErrNotFound, fromID)
	}
	to := s.byID(toID)
	if to == nil {
		return nil, nil, fmt.Errorf("%w: to account %s", common.ErrNotFound, toID)
	}
	if from.Currency != to.Currency {
		return nil, nil, fmt.Errorf("%w: %s to %s", common.ErrCurrencyMismatch, from.Currency.Label(), to.Currency.Label())
	}

	if err := from.Withdraw(amount); err != nil {
		return nil, nil, err
	}
	// Withdraw already validated the amount, so the deposit leg cannot fail.
	if err := to.Deposit(amount); err != nil {
		return nil, nil, err
	}
	if err := s.save(ctx); err != nil {
		return nil, nil, err
	}

	slog.Debug("transfer completed",
		"from", from.ID,
		"to", to.ID,
		"amount", amount,
		"from_balance", from.Balance,
		"to_balance", to.Balance)
	fromCopy, toCopy := *from, *to
	return &fromCopy, &toCopy, nil
}
