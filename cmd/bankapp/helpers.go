package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/danieljmnewton/bank-app-final/internal/common"
	"github.com/danieljmnewton/bank-app-final/internal/config"
	"github.com/danieljmnewton/bank-app-final/internal/gate"
	"github.com/danieljmnewton/bank-app-final/internal/ledger"
	"github.com/danieljmnewton/bank-app-final/internal/model"
	"github.com/danieljmnewton/bank-app-final/internal/service"
	"github.com/danieljmnewton/bank-app-final/internal/storage"
)

// app bundles the wired-up stores for one command invocation.
type app struct {
	kv       service.KVStore
	accounts *ledger.AccountStore
	records  *ledger.TransactionLedger
	engine   *ledger.Engine
	gate     *gate.Gate
}

// newApp opens the key-value store and constructs the ledger components.
func newApp() (*app, error) {
	dbPath := config.ExpandPath(viper.GetString("storage.path"))
	kv, err := storage.NewSQLiteKV(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	accounts := ledger.NewAccountStore(kv)
	records := ledger.NewTransactionLedger(kv)
	return &app{
		kv:       kv,
		accounts: accounts,
		records:  records,
		engine:   ledger.NewEngine(accounts, records),
		gate:     gate.New(kv, viper.GetString("gate.pin")),
	}, nil
}

func (a *app) Close() {
	_ = a.kv.Close()
}

// requireUnlocked loads the gate state and refuses to continue while locked.
func (a *app) requireUnlocked(ctx context.Context) error {
	if err := a.gate.Initialize(ctx); err != nil {
		return err
	}
	if !a.gate.Unlocked() {
		return common.NewUserError("bankapp is locked; run 'bankapp unlock <pin>' first", nil)
	}
	return nil
}

// resolveAccount finds an account by ID, or by name when the reference is
// not an ID. With typeName set the (name, type) pair is looked up directly;
// without it a name matching more than one account is rejected as ambiguous.
func (a *app) resolveAccount(ctx context.Context, ref, typeName string) (*model.Account, error) {
	if typeName != "" {
		accountType, err := model.ParseAccountType(typeName)
		if err != nil {
			return nil, err
		}
		account, err := a.accounts.GetByNameAndType(ctx, ref, accountType)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, fmt.Errorf("%w: %q (%s)", common.ErrNotFound, ref, accountType.Label())
		}
		return account, nil
	}

	account, err := a.accounts.GetByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	all, err := a.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []model.Account
	for _, candidate := range all {
		if strings.EqualFold(candidate.Name, ref) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", common.ErrNotFound, ref)
	case 1:
		return &matches[0], nil
	default:
		return nil, common.NewUserError(
			fmt.Sprintf("account name %q matches more than one account; pass --type", ref), nil)
	}
}

// parseAmount parses a positive decimal amount from user input.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a valid amount", common.ErrValidation, s)
	}
	return amount, nil
}

// parseDate parses a YYYY-MM-DD flag value.
func parseDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid date (expected YYYY-MM-DD)", common.ErrValidation, s)
	}
	return &t, nil
}
