package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	cache       Cache
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, cache Cache, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		cache:       cache,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID        string
	AccountName   string
	AccountNumber string
	BankName      string
}

// CreateAccount creates a new account with a zero balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()

	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		UserID:        input.UserID,
		AccountName:   strings.ToLower(input.AccountName),
		AccountNumber: input.AccountNumber,
		BankName:      strings.ToLower(input.BankName),
		Balance:       decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByUserID retrieves the account owned by a user.
func (uc *AccountUseCase) GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	return uc.accountRepo.GetByUserID(ctx, userID)
}

// GetBalance reads an account's current balance.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Page int
	Size int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	page, size := domain.ValidatePagination(input.Page, input.Size)

	return uc.accountRepo.List(ctx, size, (page-1)*size)
}

// DeleteAccount soft-deletes an account. Only the owner or an admin may do
// so; the row survives because transactions keep referencing it.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string, actor *domain.User) error {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.Role.CanManage() && actor.ID != account.UserID {
		return domain.ErrUnauthorized
	}

	return uc.accountRepo.SoftDelete(ctx, id, time.Now().UTC())
}
