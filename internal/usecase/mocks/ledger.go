package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// FakeLedger is an in-memory ledger store implementing AccountRepository,
// TransactionRepository, UserRepository and TransactionManager at once.
// Begin snapshots the whole state; Rollback restores it, so tests can
// assert that a failed atomic unit leaves no partial writes behind.
type FakeLedger struct {
	mu sync.Mutex

	accounts     map[string]*domain.Account
	transactions map[string]*domain.Transaction
	users        map[string]*domain.User

	snapAccounts     map[string]domain.Account
	snapTransactions map[string]domain.Transaction

	// Error injection points.
	CreateTransactionErr func(txn *domain.Transaction) error
	UpdateBalanceErr     func(accountID string) error
}

// NewFakeLedger creates an empty FakeLedger.
func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		accounts:     make(map[string]*domain.Account),
		transactions: make(map[string]*domain.Transaction),
		users:        make(map[string]*domain.User),
	}
}

// SeedAccount inserts an account directly.
func (l *FakeLedger) SeedAccount(account domain.Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := account
	l.accounts[a.ID] = &a
}

// SeedUser inserts a user directly.
func (l *FakeLedger) SeedUser(user domain.User) {
	l.mu.Lock()
	defer l.mu.Unlock()
	u := user
	l.users[u.ID] = &u
}

// SeedTransaction inserts a transaction directly.
func (l *FakeLedger) SeedTransaction(txn domain.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := txn
	l.transactions[t.ID] = &t
}

// Account returns a copy of the stored account.
func (l *FakeLedger) Account(id string) domain.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *l.accounts[id]
}

// Transaction returns a copy of the stored transaction.
func (l *FakeLedger) Transaction(id string) domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *l.transactions[id]
}

// Transactions returns copies of all stored transactions.
func (l *FakeLedger) Transactions() []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Transaction, 0, len(l.transactions))
	for _, t := range l.transactions {
		out = append(out, *t)
	}
	return out
}

// Begin implements usecase.TransactionManager.
func (l *FakeLedger) Begin(ctx context.Context) (usecase.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.snapAccounts = make(map[string]domain.Account, len(l.accounts))
	for id, a := range l.accounts {
		l.snapAccounts[id] = *a
	}

	l.snapTransactions = make(map[string]domain.Transaction, len(l.transactions))
	for id, t := range l.transactions {
		l.snapTransactions[id] = *t
	}

	return &fakeTx{ledger: l}, nil
}

type fakeTx struct {
	ledger *FakeLedger
	done   bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.done = true
	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()
	t.ledger.snapAccounts = nil
	t.ledger.snapTransactions = nil
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()

	if t.ledger.snapAccounts != nil {
		restored := make(map[string]*domain.Account, len(t.ledger.snapAccounts))
		for id, a := range t.ledger.snapAccounts {
			copied := a
			restored[id] = &copied
		}
		t.ledger.accounts = restored
		t.ledger.snapAccounts = nil
	}

	if t.ledger.snapTransactions != nil {
		restored := make(map[string]*domain.Transaction, len(t.ledger.snapTransactions))
		for id, txn := range t.ledger.snapTransactions {
			copied := txn
			restored[id] = &copied
		}
		t.ledger.transactions = restored
		t.ledger.snapTransactions = nil
	}

	return nil
}

// --- AccountRepository ---

func (l *FakeLedger) Create(ctx context.Context, account *domain.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := *account
	l.accounts[a.ID] = &a
	return nil
}

func (l *FakeLedger) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok := l.accounts[id]; ok && a.DeletedAt == nil {
		copied := *a
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (l *FakeLedger) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.accounts {
		if a.AccountNumber == accountNumber && a.DeletedAt == nil {
			copied := *a
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (l *FakeLedger) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.accounts {
		if a.UserID == userID && a.DeletedAt == nil {
			copied := *a
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (l *FakeLedger) GetByNumbersForUpdate(ctx context.Context, tx usecase.Transaction, accountNumbers []string) ([]*domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*domain.Account
	for _, number := range accountNumbers {
		for _, a := range l.accounts {
			if a.AccountNumber == number && a.DeletedAt == nil {
				copied := *a
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (l *FakeLedger) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return l.GetByID(ctx, id)
}

func (l *FakeLedger) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if l.UpdateBalanceErr != nil {
		if err := l.UpdateBalanceErr(id); err != nil {
			return err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = balance
	a.UpdatedAt = updatedAt
	return nil
}

func (l *FakeLedger) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*domain.Account
	for _, a := range l.accounts {
		if a.DeletedAt == nil {
			copied := *a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (l *FakeLedger) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.DeletedAt = &deletedAt
	return nil
}

// --- TransactionRepository ---

func (l *FakeLedger) CreateTxn(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if l.CreateTransactionErr != nil {
		if err := l.CreateTransactionErr(txn); err != nil {
			return err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	t := *txn
	l.transactions[t.ID] = &t
	return nil
}

func (l *FakeLedger) GetTxnByID(ctx context.Context, id string) (*domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.transactions[id]; ok && t.DeletedAt == nil {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (l *FakeLedger) ListTxns(ctx context.Context, filter domain.TransactionFilter, limit, offset int) ([]*domain.Transaction, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*domain.Transaction
	for _, t := range l.transactions {
		if t.DeletedAt != nil || !matchesFilter(t, filter) {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	return paginate(out, limit, offset), total, nil
}

func (l *FakeLedger) ListTxnsByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*domain.Transaction
	for _, t := range l.transactions {
		if t.DeletedAt != nil {
			continue
		}
		if (t.SenderAccountID != nil && *t.SenderAccountID == accountID) ||
			(t.ReceiverAccountID != nil && *t.ReceiverAccountID == accountID) {
			copied := *t
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	return paginate(out, limit, offset), total, nil
}

func (l *FakeLedger) FindPendingBySide(ctx context.Context, tx usecase.Transaction, side domain.AccountSide, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var matches []*domain.Transaction
	for _, t := range l.transactions {
		if t.DeletedAt != nil || t.Status != domain.StatusPending || !t.Amount.Equal(amount) {
			continue
		}
		var ref *string
		if side == domain.SideSender {
			ref = t.SenderAccountID
		} else {
			ref = t.ReceiverAccountID
		}
		if ref != nil && *ref == accountID {
			matches = append(matches, t)
		}
	}
	if len(matches) != 1 {
		return nil, domain.ErrNoPendingTransaction
	}
	copied := *matches[0]
	return &copied, nil
}

func (l *FakeLedger) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.Status = status
	t.UpdatedAt = updatedAt
	return nil
}

func (l *FakeLedger) SoftDeleteTxn(ctx context.Context, id string, deletedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.DeletedAt = &deletedAt
	return nil
}

func (l *FakeLedger) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	debits, credits := decimal.Zero, decimal.Zero
	for _, t := range l.transactions {
		if t.Source != domain.SourceInApp || t.Status != domain.StatusSuccessful || t.DeletedAt != nil {
			continue
		}
		if t.Type == domain.TypeDebit {
			debits = debits.Add(t.Amount)
		} else {
			credits = credits.Add(t.Amount)
		}
	}
	return debits, credits, nil
}

// --- UserRepository ---

func (l *FakeLedger) CreateUser(ctx context.Context, user *domain.User) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	u := *user
	l.users[u.ID] = &u
	return nil
}

func (l *FakeLedger) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if u, ok := l.users[id]; ok && u.DeletedAt == nil {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (l *FakeLedger) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, u := range l.users {
		if strings.EqualFold(u.Email, email) && u.DeletedAt == nil {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (l *FakeLedger) GetUserByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, u := range l.users {
		if (strings.EqualFold(u.Email, email) || u.PhoneNumber == phone) && u.DeletedAt == nil {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (l *FakeLedger) UpdateUser(ctx context.Context, user *domain.User) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	u := *user
	l.users[u.ID] = &u
	return nil
}

func (l *FakeLedger) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*domain.User
	for _, u := range l.users {
		if u.DeletedAt == nil {
			copied := *u
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

// TransactionRepo exposes the transaction-record side of the ledger as a
// usecase.TransactionRepository. Account methods on FakeLedger keep the
// interface names, so the transaction and user views go through adapters.
func (l *FakeLedger) TransactionRepo() usecase.TransactionRepository {
	return ledgerTxnRepo{l}
}

// UserRepo exposes the user side of the ledger as a usecase.UserRepository.
func (l *FakeLedger) UserRepo() usecase.UserRepository {
	return ledgerUserRepo{l}
}

type ledgerTxnRepo struct{ l *FakeLedger }

func (r ledgerTxnRepo) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	return r.l.CreateTxn(ctx, tx, txn)
}

func (r ledgerTxnRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	return r.l.GetTxnByID(ctx, id)
}

func (r ledgerTxnRepo) List(ctx context.Context, filter domain.TransactionFilter, limit, offset int) ([]*domain.Transaction, int64, error) {
	return r.l.ListTxns(ctx, filter, limit, offset)
}

func (r ledgerTxnRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, int64, error) {
	return r.l.ListTxnsByAccount(ctx, accountID, limit, offset)
}

func (r ledgerTxnRepo) FindPendingBySide(ctx context.Context, tx usecase.Transaction, side domain.AccountSide, accountID string, amount decimal.Decimal) (*domain.Transaction, error) {
	return r.l.FindPendingBySide(ctx, tx, side, accountID, amount)
}

func (r ledgerTxnRepo) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	return r.l.UpdateStatus(ctx, tx, id, status, updatedAt)
}

func (r ledgerTxnRepo) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	return r.l.SoftDeleteTxn(ctx, id, deletedAt)
}

func (r ledgerTxnRepo) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return r.l.CheckConsistency(ctx)
}

type ledgerUserRepo struct{ l *FakeLedger }

func (r ledgerUserRepo) Create(ctx context.Context, user *domain.User) error {
	return r.l.CreateUser(ctx, user)
}

func (r ledgerUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.l.GetUserByID(ctx, id)
}

func (r ledgerUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.l.GetUserByEmail(ctx, email)
}

func (r ledgerUserRepo) GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	return r.l.GetUserByEmailOrPhone(ctx, email, phone)
}

func (r ledgerUserRepo) Update(ctx context.Context, user *domain.User) error {
	return r.l.UpdateUser(ctx, user)
}

func (r ledgerUserRepo) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return r.l.ListUsers(ctx, limit, offset)
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func matchesFilter(t *domain.Transaction, f domain.TransactionFilter) bool {
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Source != nil && t.Source != *f.Source {
		return false
	}
	if f.AccountID != nil {
		hit := (t.SenderAccountID != nil && *t.SenderAccountID == *f.AccountID) ||
			(t.ReceiverAccountID != nil && *t.ReceiverAccountID == *f.AccountID)
		if !hit {
			return false
		}
	}
	if f.StartDate != nil && t.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.CreatedAt.After(*f.EndDate) {
		return false
	}
	return true
}
