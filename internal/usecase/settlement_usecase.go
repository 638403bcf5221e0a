package usecase

import (
	"context"
	"time"

	"github.com/iho/gowallet/internal/domain"
)

// SettlementUseCase applies asynchronous payment-provider signals to the
// ledger. The same mutation runs whether the signal arrived by webhook push
// or by a verify-by-reference poll; the entry points differ only in how the
// signal was obtained.
type SettlementUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	userRepo    UserRepository
	retrier     Retrier
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	userRepo UserRepository,
	retrier Retrier,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		userRepo:    userRepo,
		retrier:     retrier,
	}
}

// ApplySettlement resolves a provider signal to exactly one PENDING
// transaction and settles it. The status flip and the balance change happen
// in the same database transaction, so a re-delivered signal finds no
// PENDING match and fails with domain.ErrNoPendingTransaction instead of
// applying twice.
func (uc *SettlementUseCase) ApplySettlement(ctx context.Context, signal domain.SettlementSignal) error {
	if err := domain.ValidateAmount(signal.Amount); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByEmail(ctx, signal.Email)
	if err != nil {
		return err
	}

	account, err := uc.accountRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return err
	}

	operation := func() error {
		return uc.settleTx(ctx, signal, account.ID)
	}

	if uc.retrier != nil {
		return uc.retrier.Retry(ctx, operation)
	}

	return operation()
}

func (uc *SettlementUseCase) settleTx(ctx context.Context, signal domain.SettlementSignal, accountID string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock the account row first so concurrent settlements against the
	// same account serialize their balance read-modify-write.
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}

	pending, err := uc.txnRepo.FindPendingBySide(ctx, tx, signal.Event.Side(), account.ID, signal.Amount)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	if !signal.Event.Succeeded() {
		// Failure signals flip status only; the balance never moved.
		if err := pending.CanTransitionTo(domain.StatusFailed); err != nil {
			return err
		}

		if err := uc.txnRepo.UpdateStatus(ctx, tx, pending.ID, domain.StatusFailed, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	if err := pending.CanTransitionTo(domain.StatusSuccessful); err != nil {
		return err
	}

	var newBalance = account.Balance
	switch signal.Event {
	case domain.EventDepositSucceeded:
		newBalance, err = account.ApplyCredit(signal.Amount)
	case domain.EventWithdrawalSucceeded:
		newBalance, err = account.ApplyDebit(signal.Amount)
	}

	if err != nil {
		return err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return err
	}

	if err := uc.txnRepo.UpdateStatus(ctx, tx, pending.ID, domain.StatusSuccessful, now); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
