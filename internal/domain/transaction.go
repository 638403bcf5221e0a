package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a balance change.
type TransactionType string

const (
	TypeCredit TransactionType = "CREDIT"
	TypeDebit  TransactionType = "DEBIT"
)

// TransactionStatus is the settlement state of a transaction.
// SUCCESSFUL and FAILED are terminal.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "PENDING"
	StatusSuccessful TransactionStatus = "SUCCESSFUL"
	StatusFailed     TransactionStatus = "FAILED"
)

// IsTerminal reports whether the status admits no further transition.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusSuccessful || s == StatusFailed
}

// TransactionSource records where a transaction originated.
type TransactionSource string

const (
	SourceInApp    TransactionSource = "IN_APP"
	SourceProvider TransactionSource = "PROVIDER"
)

// Transaction is an immutable record of a balance change. Only Status may
// change after insert, PENDING -> SUCCESSFUL or PENDING -> FAILED, once.
type Transaction struct {
	ID                string
	Type              TransactionType
	Status            TransactionStatus
	Source            TransactionSource
	Amount            decimal.Decimal
	Description       string
	SenderAccountID   *string
	SenderName        *string
	ReceiverAccountID *string
	ReceiverName      *string
	ProviderRef       *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// Validate validates a transaction before insert.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// CanTransitionTo checks the single allowed status transition.
func (t *Transaction) CanTransitionTo(next TransactionStatus) error {
	if t.Status.IsTerminal() {
		return ErrStatusAlreadyFinal
	}
	if !next.IsTerminal() {
		return ErrStatusAlreadyFinal
	}
	return nil
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	AccountID *string
	Type      *TransactionType
	Status    *TransactionStatus
	Source    *TransactionSource
	StartDate *time.Time
	EndDate   *time.Time
}
