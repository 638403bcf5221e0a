package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

const transactionColumns = `id, transaction_type, status, source, amount, description,
	sender_account_id, sender_name, receiver_account_id, receiver_name, provider_ref,
	created_at, updated_at, deleted_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction record inside the given database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (id, transaction_type, status, source, amount, description,
			sender_account_id, sender_name, receiver_account_id, receiver_name, provider_ref,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.Type,
		txn.Status,
		txn.Source,
		decimalToNumeric(txn.Amount),
		txn.Description,
		txn.SenderAccountID,
		txn.SenderName,
		txn.ReceiverAccountID,
		txn.ReceiverName,
		txn.ProviderRef,
		timeToPgTimestamptz(txn.CreatedAt),
		timeToPgTimestamptz(txn.UpdatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND deleted_at IS NULL
	`

	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

// List lists transactions matching the filter, newest first, with the total
// row count for the pagination envelope.
func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter, limit, offset int) ([]*domain.Transaction, int64, error) {
	where, args := buildFilter(filter)

	countQuery := `SELECT COUNT(*) FROM transactions ` + where

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT `+transactionColumns+`
		FROM transactions
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// ListByAccount lists transactions where the account appears on either side.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM transactions
		WHERE (sender_account_id = $1 OR receiver_account_id = $1) AND deleted_at IS NULL
	`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, accountID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (sender_account_id = $1 OR receiver_account_id = $1) AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// FindPendingBySide resolves the unique PENDING transaction carrying the
// account on the given side with the exact amount, locked FOR UPDATE. The
// LIMIT 2 makes an ambiguous match detectable without scanning further.
func (r *TransactionRepository) FindPendingBySide(ctx context.Context, tx usecase.Transaction, side domain.AccountSide, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	column := "sender_account_id"
	if side == domain.SideReceiver {
		column = "receiver_account_id"
	}

	query := fmt.Sprintf(`
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE %s = $1 AND amount = $2 AND status = $3 AND deleted_at IS NULL
		ORDER BY created_at
		LIMIT 2
		FOR UPDATE
	`, column)

	rows, err := pgxTx.Query(ctx, query, accountID, decimalToNumeric(amount), domain.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}

	if len(matches) != 1 {
		return nil, domain.ErrNoPendingTransaction
	}

	return matches[0], nil
}

// UpdateStatus flips a transaction's status inside the given database
// transaction. Callers check CanTransitionTo first.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE transactions
		SET status = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := pgxTx.Exec(ctx, query, id, status, timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// SoftDelete marks a transaction deleted without removing the row.
func (r *TransactionRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	query := `
		UPDATE transactions
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, id, timeToPgTimestamptz(deletedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// CheckConsistency sums successful in-app debits and credits. The two
// totals match when every transfer wrote both of its records.
func (r *TransactionRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = $2), 0)
		FROM transactions
		WHERE source = $3 AND status = $4 AND deleted_at IS NULL
	`

	var debits, credits pgtype.Numeric
	err := r.pool.QueryRow(ctx, query,
		domain.TypeDebit,
		domain.TypeCredit,
		domain.SourceInApp,
		domain.StatusSuccessful,
	).Scan(&debits, &credits)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(debits), numericToDecimal(credits), nil
}

func buildFilter(filter domain.TransactionFilter) (string, []any) {
	conditions := []string{"deleted_at IS NULL"}
	var args []any

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		conditions = append(conditions, fmt.Sprintf("(sender_account_id = $%d OR receiver_account_id = $%d)", len(args), len(args)))
	}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		conditions = append(conditions, fmt.Sprintf("transaction_type = $%d", len(args)))
	}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.Source != nil {
		args = append(args, *filter.Source)
		conditions = append(conditions, fmt.Sprintf("source = $%d", len(args)))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn       domain.Transaction
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		deletedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.Type,
		&txn.Status,
		&txn.Source,
		&amount,
		&txn.Description,
		&txn.SenderAccountID,
		&txn.SenderName,
		&txn.ReceiverAccountID,
		&txn.ReceiverName,
		&txn.ProviderRef,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.Amount = numericToDecimal(amount)
	txn.CreatedAt = createdAt.Time
	txn.UpdatedAt = updatedAt.Time
	if deletedAt.Valid {
		t := deletedAt.Time
		txn.DeletedAt = &t
	}

	return &txn, nil
}
