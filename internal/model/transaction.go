// Package model contains the account and transaction domain types.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danieljmnewton/bank-app-final/internal/common"
)

// TransactionType identifies the balance-affecting event a record describes.
type TransactionType string

// Transaction types.
const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionTransfer   TransactionType = "transfer"
)

// ExpenseCategory classifies a withdrawal or transfer for reporting.
type ExpenseCategory string

// Expense categories. CategoryNone is the default.
const (
	CategoryNone      ExpenseCategory = "none"
	CategoryFood      ExpenseCategory = "food"
	CategoryRent      ExpenseCategory = "rent"
	CategoryTransport ExpenseCategory = "transport"
)

// Transaction is one immutable ledger record. The account name, type and
// currency are snapshots captured when the record was created, so history
// renders correctly even if the account is later renamed or removed.
type Transaction struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"fromAccountId,omitempty"`
	ToAccountID   string          `json:"toAccountId,omitempty"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Currency      Currency        `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Timestamp     time.Time       `json:"timestamp"`
	Type          TransactionType `json:"type"`
	Note          string          `json:"note,omitempty"`
	Category      ExpenseCategory `json:"category"`
}

// DisplayAccountID chooses the single account identifier that represents this
// record in a history row. Deposits show the destination, withdrawals the
// source; a transfer leg shows the side whose balance it changed.
func (t *Transaction) DisplayAccountID() string {
	switch t.Type {
	case TransactionDeposit:
		return t.ToAccountID
	case TransactionWithdrawal:
		return t.FromAccountID
	case TransactionTransfer:
		if t.Amount.Sign() < 0 {
			return t.FromAccountID
		}
		return t.ToAccountID
	default:
		if t.ToAccountID != "" {
			return t.ToAccountID
		}
		return t.FromAccountID
	}
}

// Label returns the human-readable transaction type name.
func (t TransactionType) Label() string {
	switch t {
	case TransactionDeposit:
		return "Deposit"
	case TransactionWithdrawal:
		return "Withdrawal"
	case TransactionTransfer:
		return "Transfer"
	default:
		return "Unknown"
	}
}

// Label returns the human-readable category name.
func (c ExpenseCategory) Label() string {
	switch c {
	case CategoryNone:
		return "No category"
	case CategoryFood:
		return "Food"
	case CategoryRent:
		return "Rent"
	case CategoryTransport:
		return "Transport"
	default:
		return string(c)
	}
}

// ParseTransactionType converts user input into a transaction type.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return TransactionDeposit, nil
	case "withdrawal":
		return TransactionWithdrawal, nil
	case "transfer":
		return TransactionTransfer, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", common.ErrValidation, s)
	}
}

// ParseExpenseCategory converts user input into an expense category.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CategoryNone, nil
	case "food":
		return CategoryFood, nil
	case "rent":
		return CategoryRent, nil
	case "transport":
		return CategoryTransport, nil
	default:
		return CategoryNone, fmt.Errorf("%w: unknown category %q", common.ErrValidation, s)
	}
}

// ShortID shortens an account or transaction identifier to six characters
// for display.
func ShortID(id string) string {
	s := strings.ReplaceAll(id, "-", "")
	if len(s) > 6 {
		return s[:6]
	}
	return s
}
