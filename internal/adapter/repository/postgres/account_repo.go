package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

const accountColumns = `id, user_id, account_name, account_number, bank_name, balance, created_at, updated_at, deleted_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, account_name, account_number, bank_name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.UserID,
		account.AccountName,
		account.AccountNumber,
		account.BankName,
		decimalToNumeric(account.Balance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanOne(ctx, query, id)
}

// GetByNumber retrieves an account by its account number.
func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = $1 AND deleted_at IS NULL
	`

	return r.scanOne(ctx, query, accountNumber)
}

// GetByUserID retrieves the account owned by a user.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND deleted_at IS NULL
	`

	return r.scanOne(ctx, query, userID)
}

// GetByNumbersForUpdate retrieves accounts by number with FOR UPDATE locks.
// Rows are locked in account-number order so that two concurrent transfers
// touching the same pair cannot deadlock.
func (r *AccountRepository) GetByNumbersForUpdate(ctx context.Context, tx usecase.Transaction, accountNumbers []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = ANY($1) AND deleted_at IS NULL
		ORDER BY account_number
		FOR UPDATE
	`

	rows, err := pgxTx.Query(ctx, query, accountNumbers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`

	account, err := scanAccount(pgxTx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE accounts
		SET balance = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
	`

	_, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))

	return err
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// SoftDelete marks an account deleted without removing the row.
func (r *AccountRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	query := `
		UPDATE accounts
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, id, timeToPgTimestamptz(deletedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	account, err := scanAccount(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		deletedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.AccountName,
		&account.AccountNumber,
		&account.BankName,
		&balance,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time
	if deletedAt.Valid {
		t := deletedAt.Time
		account.DeletedAt = &t
	}

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
