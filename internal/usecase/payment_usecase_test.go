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

func newPaymentFixture() (*mocks.FakeLedger, *mocks.MockPaymentProvider, *usecase.PaymentUseCase) {
	ledger := mocks.NewFakeLedger()
	ledger.SeedUser(domain.User{
		ID:    "user-1",
		Email: "ada@example.com",
	})
	ledger.SeedAccount(domain.Account{
		ID:            "acc-1",
		UserID:        "user-1",
		AccountName:   "ada okoro",
		AccountNumber: "8012345678",
		Balance:       decimal.NewFromInt(200),
	})

	provider := mocks.NewMockPaymentProvider()
	settlementUC := usecase.NewSettlementUseCase(ledger, ledger, ledger.TransactionRepo(), ledger.UserRepo(), nil)
	uc := usecase.NewPaymentUseCase(ledger, ledger, ledger.TransactionRepo(), ledger.UserRepo(), provider, settlementUC, mocks.NewMockIDGenerator())

	return ledger, provider, uc
}

func TestPaymentUseCase_InitiateDeposit(t *testing.T) {
	ledger, _, uc := newPaymentFixture()

	init, err := uc.InitiateDeposit(context.Background(), "ada@example.com", decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if init.AuthorizationURL == "" {
		t.Error("expected authorization URL")
	}

	txns := ledger.Transactions()
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}

	txn := txns[0]
	if txn.Type != domain.TypeCredit || txn.Status != domain.StatusPending || txn.Source != domain.SourceProvider {
		t.Errorf("unexpected transaction shape: %s %s %s", txn.Type, txn.Status, txn.Source)
	}
	if txn.SenderAccountID == nil || *txn.SenderAccountID != "acc-1" {
		t.Error("deposit must carry the account on the sender side")
	}
	if txn.ProviderRef == nil || *txn.ProviderRef != init.Reference {
		t.Error("expected provider reference on the transaction")
	}

	// The balance does not move until the settlement signal arrives.
	if got := ledger.Account("acc-1").Balance; !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected balance 200, got %s", got)
	}
}

func TestPaymentUseCase_InitiateDepositUnknownUser(t *testing.T) {
	_, _, uc := newPaymentFixture()

	_, err := uc.InitiateDeposit(context.Background(), "ghost@example.com", decimal.NewFromInt(100))
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPaymentUseCase_InitiateWithdrawal(t *testing.T) {
	ledger, _, uc := newPaymentFixture()

	init, err := uc.InitiateWithdrawal(context.Background(), "ada@example.com", decimal.NewFromInt(150), "rent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txns := ledger.Transactions()
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}

	txn := txns[0]
	if txn.Type != domain.TypeDebit || txn.Status != domain.StatusPending {
		t.Errorf("unexpected transaction shape: %s %s", txn.Type, txn.Status)
	}
	if txn.ReceiverAccountID == nil || *txn.ReceiverAccountID != "acc-1" {
		t.Error("withdrawal must carry the account on the receiver side")
	}
	if txn.ProviderRef == nil || *txn.ProviderRef != init.Reference {
		t.Error("expected provider reference on the transaction")
	}
	if got := ledger.Account("acc-1").Balance; !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected balance 200 before settlement, got %s", got)
	}
}

func TestPaymentUseCase_InitiateWithdrawalInsufficientFunds(t *testing.T) {
	ledger, provider, uc := newPaymentFixture()

	providerCalled := false
	provider.InitiateWithdrawalFunc = func(ctx context.Context, email string, amount decimal.Decimal, reason string) (*usecase.ProviderInit, error) {
		providerCalled = true
		return &usecase.ProviderInit{Reference: "ref"}, nil
	}

	_, err := uc.InitiateWithdrawal(context.Background(), "ada@example.com", decimal.NewFromInt(500), "")
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if providerCalled {
		t.Error("provider must not be asked to pay out an uncovered amount")
	}
	if len(ledger.Transactions()) != 0 {
		t.Error("expected no transaction recorded")
	}
}

func TestPaymentUseCase_VerifyDepositSettles(t *testing.T) {
	ledger, provider, uc := newPaymentFixture()

	accountID := "acc-1"
	ledger.SeedTransaction(domain.Transaction{
		ID:              "txn-1",
		Type:            domain.TypeCredit,
		Status:          domain.StatusPending,
		Source:          domain.SourceProvider,
		Amount:          decimal.NewFromInt(100),
		SenderAccountID: &accountID,
	})

	provider.VerifyDepositFunc = func(ctx context.Context, reference string) (*usecase.ProviderVerification, error) {
		return &usecase.ProviderVerification{
			Succeeded: true,
			Email:     "ada@example.com",
			Amount:    decimal.NewFromInt(100),
		}, nil
	}

	verification, err := uc.VerifyDeposit(context.Background(), "ref-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verification.Succeeded {
		t.Error("expected verification to report success")
	}

	if got := ledger.Account("acc-1").Balance; !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected balance 300, got %s", got)
	}
	if got := ledger.Transaction("txn-1").Status; got != domain.StatusSuccessful {
		t.Errorf("expected SUCCESSFUL, got %s", got)
	}
}

func TestPaymentUseCase_VerifyDepositStillPending(t *testing.T) {
	ledger, _, uc := newPaymentFixture()

	accountID := "acc-1"
	ledger.SeedTransaction(domain.Transaction{
		ID:              "txn-1",
		Type:            domain.TypeCredit,
		Status:          domain.StatusPending,
		Source:          domain.SourceProvider,
		Amount:          decimal.NewFromInt(100),
		SenderAccountID: &accountID,
	})

	// The default mock reports the payment as not yet settled.
	verification, err := uc.VerifyDeposit(context.Background(), "ref-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verification.Succeeded {
		t.Error("expected verification to report pending")
	}

	if got := ledger.Transaction("txn-1").Status; got != domain.StatusPending {
		t.Errorf("expected PENDING, got %s", got)
	}
	if got := ledger.Account("acc-1").Balance; !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected balance 200, got %s", got)
	}
}
