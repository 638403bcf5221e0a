package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	GetByNumbersForUpdate(ctx context.Context, tx Transaction, accountNumbers []string) ([]*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	List(ctx context.Context, filter domain.TransactionFilter, limit, offset int) ([]*domain.Transaction, int64, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, int64, error)
	// FindPendingBySide resolves the unique PENDING transaction carrying the
	// account on the given side with the exact amount. Zero or multiple
	// matches fail with domain.ErrNoPendingTransaction.
	FindPendingBySide(ctx context.Context, tx Transaction, side domain.AccountSide, accountID string, amount decimal.Decimal) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error
	// CheckConsistency sums successful in-app debits and credits; the two
	// totals must match in a conserved ledger.
	CheckConsistency(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, err error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ProviderInit is the provider's answer to an initialize/initiate call.
type ProviderInit struct {
	Reference        string
	AuthorizationURL string
}

// ProviderVerification is the provider's answer to a verify-by-reference poll.
type ProviderVerification struct {
	Succeeded bool
	Email     string
	Amount    decimal.Decimal
}

// PaymentProvider is the external payment gateway the wallet settles against.
type PaymentProvider interface {
	InitializeDeposit(ctx context.Context, email string, amount decimal.Decimal) (*ProviderInit, error)
	InitiateWithdrawal(ctx context.Context, email string, amount decimal.Decimal, reason string) (*ProviderInit, error)
	VerifyDeposit(ctx context.Context, reference string) (*ProviderVerification, error)
	VerifyWithdrawal(ctx context.Context, reference string) (*ProviderVerification, error)
}

// Notifier dispatches emails. Callers treat it as fire-and-forget; a
// notification failure never affects a committed ledger mutation.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// BlacklistChecker screens an identity against the karma blacklist.
type BlacklistChecker interface {
	// Check returns the blacklist reason for the email, or "" when clear.
	Check(ctx context.Context, email string) (string, error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
