package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	City        string    `json:"city"`
	Role        string    `json:"role"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		City:        u.City,
		Role:        string(u.Role),
		Verified:    u.Verified,
		CreatedAt:   u.CreatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// TokenResponse carries a login token.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	AccountName   string          `json:"account_name"`
	AccountNumber string          `json:"account_number"`
	BankName      string          `json:"bank_name"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		AccountName:   a.AccountName,
		AccountNumber: a.AccountNumber,
		BankName:      a.BankName,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// BalanceResponse carries a single account balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                string          `json:"id"`
	Type              string          `json:"transaction_type"`
	Status            string          `json:"status"`
	Source            string          `json:"source"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	SenderAccountID   *string         `json:"sender_account_id,omitempty"`
	SenderName        *string         `json:"sender_name,omitempty"`
	ReceiverAccountID *string         `json:"receiver_account_id,omitempty"`
	ReceiverName      *string         `json:"receiver_name,omitempty"`
	ProviderRef       *string         `json:"provider_ref,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                t.ID,
		Type:              string(t.Type),
		Status:            string(t.Status),
		Source:            string(t.Source),
		Amount:            t.Amount,
		Description:       t.Description,
		SenderAccountID:   t.SenderAccountID,
		SenderName:        t.SenderName,
		ReceiverAccountID: t.ReceiverAccountID,
		ReceiverName:      t.ReceiverName,
		ProviderRef:       t.ProviderRef,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// PaginationResponse is the envelope around paginated listings.
type PaginationResponse struct {
	TotalRows   int64 `json:"total_rows"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
}

// TransactionPageResponse is a page of transactions.
type TransactionPageResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse     `json:"pagination"`
}

// TransactionPageFromUseCase converts a usecase page to a response.
func TransactionPageFromUseCase(page *usecase.TransactionPage) *TransactionPageResponse {
	return &TransactionPageResponse{
		Transactions: TransactionsFromDomain(page.Transactions),
		Pagination: PaginationResponse{
			TotalRows:   page.Pagination.TotalRows,
			PerPage:     page.Pagination.PerPage,
			CurrentPage: page.Pagination.CurrentPage,
			TotalPages:  page.Pagination.TotalPages,
			HasNextPage: page.Pagination.HasNextPage,
		},
	}
}

// TransferReceiptResponse confirms a completed transfer.
type TransferReceiptResponse struct {
	Message string          `json:"message"`
	Amount  decimal.Decimal `json:"amount"`
}

// PaymentInitResponse carries the provider's checkout details.
type PaymentInitResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url,omitempty"`
}

// VerificationResponse reports a provider poll outcome.
type VerificationResponse struct {
	Reference string          `json:"reference"`
	Succeeded bool            `json:"succeeded"`
	Amount    decimal.Decimal `json:"amount"`
}

// ConsistencyResponse reports the ledger-wide conservation check.
type ConsistencyResponse struct {
	TotalDebits  string `json:"total_debits"`
	TotalCredits string `json:"total_credits"`
	Consistent   bool   `json:"consistent"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
