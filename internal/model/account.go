package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danieljmnewton/bank-app-final/internal/common"
)

// AccountType identifies the kind of bank account.
type AccountType string

// Account types. AccountTypeNone is the unset sentinel and is never stored.
const (
	AccountTypeNone    AccountType = "none"
	AccountTypeSavings AccountType = "savings"
	AccountTypeDeposit AccountType = "deposit"
)

// Currency identifies the currency an account is denominated in.
type Currency string

// Currencies. CurrencyNone is the unset sentinel and is never stored.
const (
	CurrencyNone Currency = "none"
	CurrencySEK  Currency = "sek"
)

// Account is a named, currency-typed balance holder. Balances are exact
// decimals; they are never represented as binary floats.
type Account struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"accountType"`
	Currency    Currency        `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// NewAccount creates an account with a fresh identifier.
func NewAccount(name string, accountType AccountType, currency Currency, initialBalance decimal.Decimal) *Account {
	return &Account{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        accountType,
		Currency:    currency,
		Balance:     initialBalance,
		LastUpdated: time.Now(),
	}
}

// Deposit adds amount to the balance. Amount must be positive.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}
	a.Balance = a.Balance.Add(amount)
	a.LastUpdated = time.Now()
	return nil
}

// Withdraw removes amount from the balance. Amount must be positive and must
// not exceed the current balance.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}
	if amount.GreaterThan(a.Balance) {
		return fmt.Errorf("%w: balance is %s, requested %s", common.ErrInsufficientFunds, a.Balance, amount)
	}
	a.Balance = a.Balance.Sub(amount)
	a.LastUpdated = time.Now()
	return nil
}

// Validate checks that a deserialized account is storable.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is required", common.ErrValidation)
	}
	if a.Type != AccountTypeSavings && a.Type != AccountTypeDeposit {
		return fmt.Errorf("%w: invalid account type %q", common.ErrValidation, a.Type)
	}
	if a.Currency != CurrencySEK {
		return fmt.Errorf("%w: invalid currency %q", common.ErrValidation, a.Currency)
	}
	if a.Balance.Sign() < 0 {
		return fmt.Errorf("%w: balance cannot be negative", common.ErrValidation)
	}
	return nil
}

// ParseAccountType converts user input into an account type.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "savings":
		return AccountTypeSavings, nil
	case "deposit", "basic":
		return AccountTypeDeposit, nil
	default:
		return AccountTypeNone, fmt.Errorf("%w: unknown account type %q", common.ErrValidation, s)
	}
}

// ParseCurrency converts user input into a currency.
func ParseCurrency(s string) (Currency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sek":
		return CurrencySEK, nil
	default:
		return CurrencyNone, fmt.Errorf("%w: unknown currency %q", common.ErrValidation, s)
	}
}

// Label returns the human-readable account type name.
func (t AccountType) Label() string {
	switch t {
	case AccountTypeDeposit:
		return "Basic account"
	case AccountTypeSavings:
		return "Savings account"
	default:
		return "Unknown"
	}
}

// Label returns the display form of the currency code.
func (c Currency) Label() string {
	if c == CurrencyNone {
		return ""
	}
	return strings.ToUpper(string(c))
}
