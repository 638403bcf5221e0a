package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransaction_Validate(t *testing.T) {
	txn := &Transaction{Amount: decimal.NewFromInt(100)}
	if err := txn.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	txn.Amount = decimal.Zero
	if err := txn.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	txn.Amount = decimal.NewFromInt(-5)
	if err := txn.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestTransaction_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name        string
		from        TransactionStatus
		to          TransactionStatus
		expectError bool
	}{
		{name: "pending to successful", from: StatusPending, to: StatusSuccessful},
		{name: "pending to failed", from: StatusPending, to: StatusFailed},
		{name: "successful is final", from: StatusSuccessful, to: StatusFailed, expectError: true},
		{name: "failed is final", from: StatusFailed, to: StatusSuccessful, expectError: true},
		{name: "pending to pending rejected", from: StatusPending, to: StatusPending, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := &Transaction{Status: tt.from}
			err := txn.CanTransitionTo(tt.to)

			if tt.expectError {
				if !errors.Is(err, ErrStatusAlreadyFinal) {
					t.Fatalf("expected ErrStatusAlreadyFinal, got %v", err)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
