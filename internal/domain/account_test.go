package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     string
		amount      string
		expectError bool
	}{
		{name: "debit less than balance", balance: "100", amount: "50"},
		{name: "debit exact balance", balance: "100", amount: "100"},
		{name: "debit more than balance", balance: "100", amount: "150", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: decimal.RequireFromString(tt.balance)}

			err := acc.ValidateDebit(decimal.RequireFromString(tt.amount))

			if tt.expectError && !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ApplyDebitCredit(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("250.75")}

	newBalance, err := acc.ApplyDebit(decimal.RequireFromString("50.25"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !newBalance.Equal(decimal.RequireFromString("200.50")) {
		t.Errorf("expected 200.50, got %s", newBalance)
	}

	// ApplyDebit computes the new balance without mutating the account.
	if !acc.Balance.Equal(decimal.RequireFromString("250.75")) {
		t.Errorf("expected account balance unchanged, got %s", acc.Balance)
	}

	newBalance, err = acc.ApplyCredit(decimal.RequireFromString("0.25"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !newBalance.Equal(decimal.RequireFromString("251.00")) {
		t.Errorf("expected 251.00, got %s", newBalance)
	}
}

func TestRole(t *testing.T) {
	if !RoleAdmin.IsValid() || !RoleUser.IsValid() {
		t.Error("built-in roles must be valid")
	}
	if Role("superuser").IsValid() {
		t.Error("unknown role must be invalid")
	}
	if !RoleAdmin.CanManage() {
		t.Error("admin must be able to manage")
	}
	if RoleUser.CanManage() {
		t.Error("regular user must not manage others")
	}
}
