package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		want        int64
		expectError bool
	}{
		{name: "whole amount", amount: "1500", want: 150000},
		{name: "two decimal places", amount: "1500.50", want: 150050},
		{name: "one kobo", amount: "0.01", want: 1},
		{name: "zero", amount: "0", want: 0},
		{name: "trailing zeros", amount: "10.100", want: 1010},
		{name: "sub-kobo precision", amount: "10.005", expectError: true},
		{name: "many decimal places", amount: "1.23456", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinorUnits(decimal.RequireFromString(tt.amount))

			if tt.expectError {
				if !errors.Is(err, ErrAmountPrecision) {
					t.Fatalf("expected ErrAmountPrecision, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	if got := FromMinorUnits(150050); !got.Equal(decimal.RequireFromString("1500.50")) {
		t.Errorf("expected 1500.50, got %s", got)
	}
	if got := FromMinorUnits(0); !got.IsZero() {
		t.Errorf("expected 0, got %s", got)
	}
}

func TestApplyCredit(t *testing.T) {
	got, err := ApplyCredit(decimal.RequireFromString("100.10"), decimal.RequireFromString("0.05"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("100.15")) {
		t.Errorf("expected 100.15, got %s", got)
	}
}

func TestApplyDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     string
		amount      string
		want        string
		expectError error
	}{
		{name: "partial debit", balance: "100", amount: "40.25", want: "59.75"},
		{name: "debit to zero", balance: "100", amount: "100", want: "0"},
		{name: "overdraft", balance: "100", amount: "100.01", expectError: ErrInsufficientFunds},
		{name: "sub-kobo amount", balance: "100", amount: "0.001", expectError: ErrAmountPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyDebit(decimal.RequireFromString(tt.balance), decimal.RequireFromString(tt.amount))

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

// Repeated small mutations must not drift, since the arithmetic runs on
// integer minor units.
func TestBalanceArithmeticStable(t *testing.T) {
	balance := decimal.Zero
	var err error

	for i := 0; i < 1000; i++ {
		balance, err = ApplyCredit(balance, decimal.RequireFromString("0.01"))
		if err != nil {
			t.Fatalf("credit %d failed: %v", i, err)
		}
	}

	if !balance.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("expected 10.00 after 1000 one-kobo credits, got %s", balance)
	}

	for i := 0; i < 1000; i++ {
		balance, err = ApplyDebit(balance, decimal.RequireFromString("0.01"))
		if err != nil {
			t.Fatalf("debit %d failed: %v", i, err)
		}
	}

	if !balance.IsZero() {
		t.Errorf("expected zero after symmetric debits, got %s", balance)
	}
}
