package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	City        string `json:"city"`
	Password    string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		City:        r.City,
		Password:    r.Password,
	}
}

// VerifyOTPRequest represents an OTP verification request.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	UserID        string `json:"user_id"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:        r.UserID,
		AccountName:   r.AccountName,
		AccountNumber: r.AccountNumber,
		BankName:      r.BankName,
	}
}

// TransferRequest represents an internal transfer request.
type TransferRequest struct {
	SenderAccountNumber   string          `json:"sender_account_number"`
	ReceiverAccountNumber string          `json:"receiver_account_number"`
	Amount                decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferFundsInput {
	return usecase.TransferFundsInput{
		SenderAccountNumber:   r.SenderAccountNumber,
		ReceiverAccountNumber: r.ReceiverAccountNumber,
		Amount:                r.Amount,
	}
}

// DepositRequest represents a deposit initialization request.
type DepositRequest struct {
	Email  string          `json:"email"`
	Amount decimal.Decimal `json:"amount"`
}

// WithdrawRequest represents a withdrawal initiation request.
type WithdrawRequest struct {
	Email  string          `json:"email"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
}

// TransactionFilterRequest carries optional listing filters from the query
// string.
type TransactionFilterRequest struct {
	AccountID string
	Type      string
	Status    string
	Source    string
	StartDate string
	EndDate   string
}

// ToDomainFilter converts query values into a domain filter.
func (r *TransactionFilterRequest) ToDomainFilter() domain.TransactionFilter {
	var filter domain.TransactionFilter

	if r.AccountID != "" {
		filter.AccountID = &r.AccountID
	}

	if r.Type != "" {
		t := domain.TransactionType(r.Type)
		filter.Type = &t
	}

	if r.Status != "" {
		s := domain.TransactionStatus(r.Status)
		filter.Status = &s
	}

	if r.Source != "" {
		s := domain.TransactionSource(r.Source)
		filter.Source = &s
	}

	// Unparseable dates are dropped rather than failing the listing.
	if t, err := time.Parse(time.RFC3339, r.StartDate); err == nil {
		filter.StartDate = &t
	}

	if t, err := time.Parse(time.RFC3339, r.EndDate); err == nil {
		filter.EndDate = &t
	}

	return filter
}
