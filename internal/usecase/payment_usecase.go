package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// PaymentUseCase drives deposits and withdrawals through the external
// payment provider. Provider calls happen before or after the ledger's
// atomic unit, never inside it.
type PaymentUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	txnRepo      TransactionRepository
	userRepo     UserRepository
	provider     PaymentProvider
	settlementUC *SettlementUseCase
	idGen        IDGenerator
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	userRepo UserRepository,
	provider PaymentProvider,
	settlementUC *SettlementUseCase,
	idGen IDGenerator,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		userRepo:     userRepo,
		provider:     provider,
		settlementUC: settlementUC,
		idGen:        idGen,
	}
}

// InitiateDeposit asks the provider for a checkout reference and records a
// PENDING CREDIT transaction carrying the account on the sender side. The
// balance does not move until a settlement signal arrives.
func (uc *PaymentUseCase) InitiateDeposit(ctx context.Context, email string, amount decimal.Decimal) (*ProviderInit, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	account, err := uc.resolveAccount(ctx, email)
	if err != nil {
		return nil, err
	}

	init, err := uc.provider.InitializeDeposit(ctx, email, amount)
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		Type:            domain.TypeCredit,
		Status:          domain.StatusPending,
		Source:          domain.SourceProvider,
		Amount:          amount,
		Description:     "Deposit initialization via payment provider",
		SenderAccountID: &account.ID,
		SenderName:      &account.AccountName,
		ProviderRef:     &init.Reference,
	}

	if err := uc.insertPending(ctx, txn); err != nil {
		return nil, err
	}

	return init, nil
}

// InitiateWithdrawal asks the provider to pay out and records a PENDING
// DEBIT transaction carrying the account on the receiver side.
func (uc *PaymentUseCase) InitiateWithdrawal(ctx context.Context, email string, amount decimal.Decimal, reason string) (*ProviderInit, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	account, err := uc.resolveAccount(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateDebit(amount); err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "Withdrawal via payment provider"
	}

	init, err := uc.provider.InitiateWithdrawal(ctx, email, amount, reason)
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:                uc.idGen.Generate(),
		Type:              domain.TypeDebit,
		Status:            domain.StatusPending,
		Source:            domain.SourceProvider,
		Amount:            amount,
		Description:       reason,
		ReceiverAccountID: &account.ID,
		ReceiverName:      &account.AccountName,
		ProviderRef:       &init.Reference,
	}

	if err := uc.insertPending(ctx, txn); err != nil {
		return nil, err
	}

	return init, nil
}

// VerifyDeposit polls the provider for a deposit's outcome and, when it
// succeeded, applies the same settlement mutation the webhook path uses.
func (uc *PaymentUseCase) VerifyDeposit(ctx context.Context, reference string) (*ProviderVerification, error) {
	verification, err := uc.provider.VerifyDeposit(ctx, reference)
	if err != nil {
		return nil, err
	}

	if !verification.Succeeded {
		return verification, nil
	}

	err = uc.settlementUC.ApplySettlement(ctx, domain.SettlementSignal{
		Event:  domain.EventDepositSucceeded,
		Email:  verification.Email,
		Amount: verification.Amount,
	})
	if err != nil {
		return nil, err
	}

	return verification, nil
}

// VerifyWithdrawal polls the provider for a withdrawal's outcome.
func (uc *PaymentUseCase) VerifyWithdrawal(ctx context.Context, reference string) (*ProviderVerification, error) {
	verification, err := uc.provider.VerifyWithdrawal(ctx, reference)
	if err != nil {
		return nil, err
	}

	if !verification.Succeeded {
		return verification, nil
	}

	err = uc.settlementUC.ApplySettlement(ctx, domain.SettlementSignal{
		Event:  domain.EventWithdrawalSucceeded,
		Email:  verification.Email,
		Amount: verification.Amount,
	})
	if err != nil {
		return nil, err
	}

	return verification, nil
}

func (uc *PaymentUseCase) resolveAccount(ctx context.Context, email string) (*domain.Account, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return uc.accountRepo.GetByUserID(ctx, user.ID)
}

func (uc *PaymentUseCase) insertPending(ctx context.Context, txn *domain.Transaction) error {
	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	if err := txn.Validate(); err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
