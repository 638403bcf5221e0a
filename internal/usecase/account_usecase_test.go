package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

func newAccountFixture() (*mocks.FakeLedger, *usecase.AccountUseCase) {
	ledger := mocks.NewFakeLedger()
	uc := usecase.NewAccountUseCase(ledger, mocks.NewMockCache(), mocks.NewMockIDGenerator())
	return ledger, uc
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	_, uc := newAccountFixture()

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		UserID:        "user-1",
		AccountName:   "Ada Okoro",
		AccountNumber: "8012345678",
		BankName:      "Demo Credit",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID == "" {
		t.Error("expected generated ID")
	}
	if account.AccountName != "ada okoro" {
		t.Errorf("expected lowercased account name, got %q", account.AccountName)
	}
	if account.BankName != "demo credit" {
		t.Errorf("expected lowercased bank name, got %q", account.BankName)
	}
	if !account.Balance.IsZero() {
		t.Errorf("expected zero opening balance, got %s", account.Balance)
	}
}

func TestAccountUseCase_GetBalance(t *testing.T) {
	ledger, uc := newAccountFixture()
	ledger.SeedAccount(domain.Account{
		ID:      "acc-1",
		Balance: decimal.RequireFromString("420.69"),
	})

	balance, err := uc.GetBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("420.69")) {
		t.Errorf("expected 420.69, got %s", balance)
	}

	if _, err := uc.GetBalance(context.Background(), "acc-unknown"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	tests := []struct {
		name      string
		actor     *domain.User
		errorType error
	}{
		{
			name:  "owner may delete",
			actor: &domain.User{ID: "user-1", Role: domain.RoleUser},
		},
		{
			name:  "admin may delete",
			actor: &domain.User{ID: "user-admin", Role: domain.RoleAdmin},
		},
		{
			name:      "stranger may not delete",
			actor:     &domain.User{ID: "user-2", Role: domain.RoleUser},
			errorType: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, uc := newAccountFixture()
			ledger.SeedAccount(domain.Account{ID: "acc-1", UserID: "user-1"})

			err := uc.DeleteAccount(context.Background(), "acc-1", tt.actor)

			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := uc.GetAccount(context.Background(), "acc-1"); !errors.Is(err, domain.ErrAccountNotFound) {
				t.Error("deleted account must not be readable")
			}
		})
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	ledger, uc := newAccountFixture()
	for i := 0; i < 15; i++ {
		ledger.SeedAccount(domain.Account{
			ID:            "acc-" + string(rune('a'+i)),
			AccountNumber: "80123456" + string(rune('a'+i)),
		})
	}

	accounts, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 10 {
		t.Errorf("expected 10 accounts, got %d", len(accounts))
	}

	accounts, err = uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Page: 2, Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 5 {
		t.Errorf("expected 5 accounts on page 2, got %d", len(accounts))
	}
}
