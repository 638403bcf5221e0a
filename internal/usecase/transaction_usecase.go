package usecase

import (
	"context"
	"time"

	"github.com/iho/gowallet/internal/domain"
)

// TransactionUseCase handles transaction queries and bookkeeping reads.
type TransactionUseCase struct {
	txnRepo     TransactionRepository
	accountRepo AccountRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(txnRepo TransactionRepository, accountRepo AccountRepository) *TransactionUseCase {
	return &TransactionUseCase{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

// Pagination describes one page of a listing.
type Pagination struct {
	TotalRows   int64
	PerPage     int
	CurrentPage int
	TotalPages  int
	HasNextPage bool
}

// TransactionPage is a page of transactions plus its pagination envelope.
type TransactionPage struct {
	Transactions []*domain.Transaction
	Pagination   Pagination
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	Filter domain.TransactionFilter
	Page   int
	Size   int
}

// ListTransactions lists transactions newest-first with a 1-indexed page.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) (*TransactionPage, error) {
	page, size := domain.ValidatePagination(input.Page, input.Size)

	transactions, total, err := uc.txnRepo.List(ctx, input.Filter, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	return buildPage(transactions, total, page, size), nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txnRepo.GetByID(ctx, id)
}

// ListByAccount lists transactions where the account appears on either side.
func (uc *TransactionUseCase) ListByAccount(ctx context.Context, accountID string, page, size int) (*TransactionPage, error) {
	page, size = domain.ValidatePagination(page, size)

	transactions, total, err := uc.txnRepo.ListByAccount(ctx, accountID, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	if total == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	return buildPage(transactions, total, page, size), nil
}

// DeleteTransaction soft-deletes a transaction. Only the owner of an
// involved account or an admin may do so.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string, actor *domain.User) error {
	txn, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	accountID := txn.SenderAccountID
	if accountID == nil {
		accountID = txn.ReceiverAccountID
	}

	if accountID == nil {
		return domain.ErrAccountNotFound
	}

	account, err := uc.accountRepo.GetByID(ctx, *accountID)
	if err != nil {
		return err
	}

	if !actor.Role.CanManage() && actor.ID != account.UserID {
		return domain.ErrUnauthorized
	}

	return uc.txnRepo.SoftDelete(ctx, id, time.Now().UTC())
}

// CheckConsistency verifies that successful in-app debits and credits net
// to zero across the ledger.
type ConsistencyResult struct {
	TotalDebits  string
	TotalCredits string
	Consistent   bool
}

// CheckConsistency runs the ledger-wide conservation check.
func (uc *TransactionUseCase) CheckConsistency(ctx context.Context) (*ConsistencyResult, error) {
	debits, credits, err := uc.txnRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyResult{
		TotalDebits:  debits.String(),
		TotalCredits: credits.String(),
		Consistent:   debits.Equal(credits),
	}, nil
}

func buildPage(transactions []*domain.Transaction, total int64, page, size int) *TransactionPage {
	totalPages := int((total + int64(size) - 1) / int64(size))

	return &TransactionPage{
		Transactions: transactions,
		Pagination: Pagination{
			TotalRows:   total,
			PerPage:     size,
			CurrentPage: page,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
		},
	}
}
