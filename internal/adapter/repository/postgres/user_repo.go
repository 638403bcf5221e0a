package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowallet/internal/domain"
)

const userColumns = `id, first_name, last_name, email, phone_number, city, role,
	hashed_password, otp, otp_expiry, verified, created_at, updated_at, deleted_at`

// UserRepository implements user persistence
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, phone_number, city, role,
			hashed_password, otp, otp_expiry, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PhoneNumber,
		user.City,
		user.Role,
		user.HashedPassword,
		user.OTP,
		timeToPgTimestamptz(user.OTPExpiry),
		user.Verified,
		timeToPgTimestamptz(user.CreatedAt),
		timeToPgTimestamptz(user.UpdatedAt),
	)

	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanOne(ctx, query, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE lower(email) = lower($1) AND deleted_at IS NULL
	`

	return r.scanOne(ctx, query, email)
}

// GetByEmailOrPhone retrieves a user matching either identifier. The
// registration flow uses it for the uniqueness check.
func (r *UserRepository) GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE (lower(email) = lower($1) OR phone_number = $2) AND deleted_at IS NULL
		LIMIT 1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, phone_number = $4, city = $5, role = $6,
			hashed_password = $7, otp = $8, otp_expiry = $9, verified = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.City,
		user.Role,
		user.HashedPassword,
		user.OTP,
		timeToPgTimestamptz(user.OTPExpiry),
		user.Verified,
		timeToPgTimestamptz(user.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// List retrieves all users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user      domain.User
		otpExpiry pgtype.Timestamptz
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		deletedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PhoneNumber,
		&user.City,
		&user.Role,
		&user.HashedPassword,
		&user.OTP,
		&otpExpiry,
		&user.Verified,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	user.OTPExpiry = otpExpiry.Time
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time
	if deletedAt.Valid {
		t := deletedAt.Time
		user.DeletedAt = &t
	}

	return &user, nil
}
