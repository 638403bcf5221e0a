package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a wallet account holding a balance for one user.
type Account struct {
	ID            string
	UserID        string
	AccountName   string
	AccountNumber string
	BankName      string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// ValidateDebit checks if the account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the new balance after debiting amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) (decimal.Decimal, error) {
	return ApplyDebit(a.Balance, amount)
}

// ApplyCredit returns the new balance after crediting amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) (decimal.Decimal, error) {
	return ApplyCredit(a.Balance, amount)
}
