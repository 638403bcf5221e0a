package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// TransferUseCase moves money between two wallet accounts as one atomic
// unit: debit, credit and the paired audit records commit together or not
// at all.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	retrier     Retrier
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		retrier:     retrier,
	}
}

// TransferFundsInput represents input for an internal transfer.
type TransferFundsInput struct {
	SenderAccountNumber   string
	ReceiverAccountNumber string
	Amount                decimal.Decimal
}

// TransferReceipt confirms a completed transfer.
type TransferReceipt struct {
	Message string
	Amount  decimal.Decimal
}

// TransferFunds debits the sender, credits the receiver and records one
// DEBIT and one CREDIT transaction, all inside a single database
// transaction. Balances are re-read under row locks inside that
// transaction, never reused from an earlier read.
func (uc *TransferUseCase) TransferFunds(ctx context.Context, input TransferFundsInput) (*TransferReceipt, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.SenderAccountNumber == input.ReceiverAccountNumber {
		return nil, domain.ErrSameAccount
	}

	operation := func() error {
		return uc.transferTx(ctx, input)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}

	if err != nil {
		return nil, err
	}

	return &TransferReceipt{
		Message: "Transfer successful",
		Amount:  input.Amount,
	}, nil
}

func (uc *TransferUseCase) transferTx(ctx context.Context, input TransferFundsInput) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock both rows in sorted order (DEADLOCK PREVENTION).
	numbers := []string{input.SenderAccountNumber, input.ReceiverAccountNumber}
	sort.Strings(numbers)

	accounts, err := uc.accountRepo.GetByNumbersForUpdate(ctx, tx, numbers)
	if err != nil {
		return err
	}

	byNumber := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byNumber[a.AccountNumber] = a
	}

	sender := byNumber[input.SenderAccountNumber]
	if sender == nil {
		return domain.ErrSenderAccountNotFound
	}

	receiver := byNumber[input.ReceiverAccountNumber]
	if receiver == nil {
		return domain.ErrReceiverAccountNotFound
	}

	if err := sender.ValidateDebit(input.Amount); err != nil {
		return err
	}

	senderBalance, err := sender.ApplyDebit(input.Amount)
	if err != nil {
		return err
	}

	receiverBalance, err := receiver.ApplyCredit(input.Amount)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateBalance(ctx, tx, sender.ID, senderBalance, now); err != nil {
		return err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, receiver.ID, receiverBalance, now); err != nil {
		return err
	}

	debit := &domain.Transaction{
		ID:                uc.idGen.Generate(),
		Type:              domain.TypeDebit,
		Status:            domain.StatusSuccessful,
		Source:            domain.SourceInApp,
		Amount:            input.Amount,
		Description:       fmt.Sprintf("Transfer to %s", receiver.AccountName),
		SenderAccountID:   &sender.ID,
		SenderName:        &sender.AccountName,
		ReceiverAccountID: &receiver.ID,
		ReceiverName:      &receiver.AccountName,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := debit.Validate(); err != nil {
		return err
	}

	if err := uc.txnRepo.Create(ctx, tx, debit); err != nil {
		return err
	}

	credit := &domain.Transaction{
		ID:                uc.idGen.Generate(),
		Type:              domain.TypeCredit,
		Status:            domain.StatusSuccessful,
		Source:            domain.SourceInApp,
		Amount:            input.Amount,
		Description:       fmt.Sprintf("Transfer from %s", sender.AccountName),
		SenderAccountID:   &sender.ID,
		SenderName:        &sender.AccountName,
		ReceiverAccountID: &receiver.ID,
		ReceiverName:      &receiver.AccountName,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := credit.Validate(); err != nil {
		return err
	}

	if err := uc.txnRepo.Create(ctx, tx, credit); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
