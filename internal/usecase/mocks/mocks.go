package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/usecase"
)

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + time.Now().Format("150405") + "-" + string(rune('a'+m.counter%26)) + string(rune('a'+(m.counter/26)%26))
}

// MockPaymentProvider is a mock implementation of PaymentProvider.
type MockPaymentProvider struct {
	InitializeDepositFunc  func(ctx context.Context, email string, amount decimal.Decimal) (*usecase.ProviderInit, error)
	InitiateWithdrawalFunc func(ctx context.Context, email string, amount decimal.Decimal, reason string) (*usecase.ProviderInit, error)
	VerifyDepositFunc      func(ctx context.Context, reference string) (*usecase.ProviderVerification, error)
	VerifyWithdrawalFunc   func(ctx context.Context, reference string) (*usecase.ProviderVerification, error)
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) InitializeDeposit(ctx context.Context, email string, amount decimal.Decimal) (*usecase.ProviderInit, error) {
	if m.InitializeDepositFunc != nil {
		return m.InitializeDepositFunc(ctx, email, amount)
	}
	return &usecase.ProviderInit{Reference: "ref-deposit", AuthorizationURL: "https://provider.test/checkout"}, nil
}

func (m *MockPaymentProvider) InitiateWithdrawal(ctx context.Context, email string, amount decimal.Decimal, reason string) (*usecase.ProviderInit, error) {
	if m.InitiateWithdrawalFunc != nil {
		return m.InitiateWithdrawalFunc(ctx, email, amount, reason)
	}
	return &usecase.ProviderInit{Reference: "ref-withdrawal"}, nil
}

func (m *MockPaymentProvider) VerifyDeposit(ctx context.Context, reference string) (*usecase.ProviderVerification, error) {
	if m.VerifyDepositFunc != nil {
		return m.VerifyDepositFunc(ctx, reference)
	}
	return &usecase.ProviderVerification{Succeeded: false}, nil
}

func (m *MockPaymentProvider) VerifyWithdrawal(ctx context.Context, reference string) (*usecase.ProviderVerification, error) {
	if m.VerifyWithdrawalFunc != nil {
		return m.VerifyWithdrawalFunc(ctx, reference)
	}
	return &usecase.ProviderVerification{Succeeded: false}, nil
}

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mu   sync.Mutex
	Sent []string

	SendFunc func(ctx context.Context, to, subject, body string) error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, to)
	return nil
}

// MockBlacklistChecker is a mock implementation of BlacklistChecker.
type MockBlacklistChecker struct {
	CheckFunc func(ctx context.Context, email string) (string, error)
}

func NewMockBlacklistChecker() *MockBlacklistChecker {
	return &MockBlacklistChecker{}
}

func (m *MockBlacklistChecker) Check(ctx context.Context, email string) (string, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, email)
	}
	return "", nil
}

// MockCache is an in-memory mock implementation of Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return "", ErrCacheMiss
}

// ErrCacheMiss is returned by MockCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
