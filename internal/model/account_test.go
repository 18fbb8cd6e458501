package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/danieljmnewton/bank-app-final/internal/common"
)

func TestAccount_Deposit(t *testing.T) {
	tests := []struct {
		name        string
		start       string
		amount      string
		wantBalance string
		wantErr     error
	}{
		{name: "positive amount", start: "100", amount: "50", wantBalance: "150"},
		{name: "fractional amount", start: "0.10", amount: "0.20", wantBalance: "0.30"},
		{name: "zero amount", start: "100", amount: "0", wantBalance: "100", wantErr: common.ErrValidation},
		{name: "negative amount", start: "100", amount: "-5", wantBalance: "100", wantErr: common.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := NewAccount("Test", AccountTypeSavings, CurrencySEK, decimal.RequireFromString(tt.start))
			err := account.Deposit(decimal.RequireFromString(tt.amount))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Deposit() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Deposit() unexpected error: %v", err)
			}
			if !account.Balance.Equal(decimal.RequireFromString(tt.wantBalance)) {
				t.Errorf("balance = %s, want %s", account.Balance, tt.wantBalance)
			}
		})
	}
}

func TestAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		start       string
		amount      string
		wantBalance string
		wantErr     error
	}{
		{name: "within balance", start: "100", amount: "30", wantBalance: "70"},
		{name: "entire balance", start: "100", amount: "100", wantBalance: "0"},
		{name: "exceeds balance", start: "100", amount: "100.01", wantBalance: "100", wantErr: common.ErrInsufficientFunds},
		{name: "zero amount", start: "100", amount: "0", wantBalance: "100", wantErr: common.ErrValidation},
		{name: "negative amount", start: "100", amount: "-1", wantBalance: "100", wantErr: common.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := NewAccount("Test", AccountTypeDeposit, CurrencySEK, decimal.RequireFromString(tt.start))
			err := account.Withdraw(decimal.RequireFromString(tt.amount))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Withdraw() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Withdraw() unexpected error: %v", err)
			}
			if !account.Balance.Equal(decimal.RequireFromString(tt.wantBalance)) {
				t.Errorf("balance = %s, want %s", account.Balance, tt.wantBalance)
			}
		})
	}
}

func TestAccount_Validate(t *testing.T) {
	valid := func() *Account {
		return NewAccount("Alice", AccountTypeSavings, CurrencySEK, decimal.NewFromInt(100))
	}

	tests := []struct {
		name    string
		mutate  func(*Account)
		wantErr bool
	}{
		{name: "valid account", mutate: func(*Account) {}},
		{name: "blank name", mutate: func(a *Account) { a.Name = "  " }, wantErr: true},
		{name: "sentinel type", mutate: func(a *Account) { a.Type = AccountTypeNone }, wantErr: true},
		{name: "unknown type", mutate: func(a *Account) { a.Type = "checking" }, wantErr: true},
		{name: "sentinel currency", mutate: func(a *Account) { a.Currency = CurrencyNone }, wantErr: true},
		{name: "negative balance", mutate: func(a *Account) { a.Balance = decimal.NewFromInt(-1) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := valid()
			tt.mutate(account)
			err := account.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseAccountType(t *testing.T) {
	if got, err := ParseAccountType(" Savings "); err != nil || got != AccountTypeSavings {
		t.Errorf("ParseAccountType(Savings) = %v, %v", got, err)
	}
	if got, err := ParseAccountType("basic"); err != nil || got != AccountTypeDeposit {
		t.Errorf("ParseAccountType(basic) = %v, %v", got, err)
	}
	if _, err := ParseAccountType("checking"); err == nil {
		t.Error("ParseAccountType(checking) expected error")
	}
}
