package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound         = errors.New("account not found")
	ErrSenderAccountNotFound   = errors.New("sender account number is not correct")
	ErrReceiverAccountNotFound = errors.New("recipient account number is not correct")
	ErrInsufficientFunds       = errors.New("insufficient funds")

	// Transaction errors
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrNoPendingTransaction = errors.New("no pending transaction")
	ErrStatusAlreadyFinal   = errors.New("transaction status is already final")
	ErrSameAccount          = errors.New("cannot transfer to same account")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
	ErrPhoneTaken   = errors.New("user with this phone number already exists")
	ErrBlacklisted  = errors.New("user is on the karma blacklist")
)
