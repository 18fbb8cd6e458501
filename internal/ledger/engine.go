package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danieljmnewton/bank-app-final/internal/model"
)

// Engine composes the account store and the transaction ledger into compound
// operations: mutate balances first, then append the matching record(s)
// capturing the post-mutation state.
//
// The two persists are separate writes. If the process dies between them the
// balance change survives without its record. That gap is accepted for a
// single-user tool; the engine does not roll balances back.
type Engine struct {
	accounts *AccountStore
	records  *TransactionLedger
}

// NewEngine creates an engine over the given stores.
func NewEngine(accounts *AccountStore, records *TransactionLedger) *Engine {
	return &Engine{accounts: accounts, records: records}
}

// RecordDeposit deposits amount into the account and appends one Deposit
// record with the resulting balance.
func (e *Engine) RecordDeposit(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Transaction, error) {
	account, err := e.accounts.Deposit(ctx, accountID, amount)
	if err != nil {
		return nil, err
	}

	record := model.Transaction{
		ID:           uuid.NewString(),
		ToAccountID:  account.ID,
		AccountName:  account.Name,
		AccountType:  account.Type,
		Currency:     account.Currency,
		Amount:       amount,
		BalanceAfter: account.Balance,
		Timestamp:    time.Now(),
		Type:         model.TransactionDeposit,
		Category:     model.CategoryNone,
	}
	if err := e.records.Append(ctx, record); err != nil {
		return nil, err
	}
	return &record, nil
}

// RecordWithdrawal withdraws amount from the account and appends one
// Withdrawal record carrying the expense category.
func (e *Engine) RecordWithdrawal(ctx context.Context, accountID string, amount decimal.Decimal, category model.ExpenseCategory) (*model.Transaction, error) {
	account, err := e.accounts.Withdraw(ctx, accountID, amount)
	if err != nil {
		return nil, err
	}

	record := model.Transaction{
		ID:            uuid.NewString(),
		FromAccountID: account.ID,
		AccountName:   account.Name,
		AccountType:   account.Type,
		Currency:      account.Currency,
		Amount:        amount,
		BalanceAfter:  account.Balance,
		Timestamp:     time.Now(),
		Type:          model.TransactionWithdrawal,
		Category:      category,
	}
	if err := e.records.Append(ctx, record); err != nil {
		return nil, err
	}
	return &record, nil
}

// RecordTransfer moves amount between two accounts and appends two linked
// Transfer records: a debit leg with a negative amount against the source's
// resulting balance, and a credit leg with a positive amount against the
// destination's. Both carry the same note and category.
func (e *Engine) RecordTransfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, note string, category model.ExpenseCategory) (debit, credit *model.Transaction, err error) {
	from, to, err := e.accounts.Transfer(ctx, fromID, toID, amount)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	debitRecord := model.Transaction{
		ID:            uuid.NewString(),
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		AccountName:   from.Name,
		AccountType:   from.Type,
		Currency:      from.Currency,
		Amount:        amount.Neg(),
		BalanceAfter:  from.Balance,
		Timestamp:     now,
		Type:          model.TransactionTransfer,
		Note:          note,
		Category:      category,
	}
	creditRecord := model.Transaction{
		ID:            uuid.NewString(),
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		AccountName:   to.Name,
		AccountType:   to.Type,
		Currency:      to.Currency,
		Amount:        amount,
		BalanceAfter:  to.Balance,
		Timestamp:     now,
		Type:          model.TransactionTransfer,
		Note:          note,
		Category:      category,
	}

	if err := e.records.Append(ctx, debitRecord); err != nil {
		return nil, nil, err
	}
	if err := e.records.Append(ctx, creditRecord); err != nil {
		return nil, nil, err
	}
	return &debitRecord, &creditRecord, nil
}
