package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

func newUserFixture() (*mocks.FakeLedger, *mocks.MockBlacklistChecker, *mocks.MockCache, *usecase.UserUseCase) {
	ledger := mocks.NewFakeLedger()
	blacklist := mocks.NewMockBlacklistChecker()
	cache := mocks.NewMockCache()
	idGen := mocks.NewMockIDGenerator()

	accountUC := usecase.NewAccountUseCase(ledger, cache, idGen)
	uc := usecase.NewUserUseCase(ledger.UserRepo(), accountUC, blacklist, mocks.NewMockNotifier(), cache, idGen)

	return ledger, blacklist, cache, uc
}

func validRegisterInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		FirstName:   "Ada",
		LastName:    "Okoro",
		Email:       "ada@example.com",
		PhoneNumber: "+2348012345678",
		City:        "Lagos",
		Password:    "Sup3rSecret",
	}
}

func TestUserUseCase_Register(t *testing.T) {
	ledger, _, _, uc := newUserFixture()

	user, err := uc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "ada@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.HashedPassword != "" {
		t.Error("returned user must not carry the password hash")
	}
	if user.Verified {
		t.Error("new user must start unverified")
	}
	if user.Role != domain.RoleUser {
		t.Errorf("expected default role user, got %s", user.Role)
	}

	// Registration opens the wallet account with the phone-derived number.
	account, err := ledger.GetByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("expected account for new user: %v", err)
	}
	if account.AccountNumber != "8012345678" {
		t.Errorf("expected account number 8012345678, got %s", account.AccountNumber)
	}
	if !account.Balance.IsZero() {
		t.Errorf("expected zero opening balance, got %s", account.Balance)
	}

	// The stored hash verifies against the original password.
	stored, err := ledger.GetUserByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("Sup3rSecret")); err != nil {
		t.Error("stored hash does not match the password")
	}
	if stored.OTP == "" {
		t.Error("expected an OTP to be issued")
	}
}

func TestUserUseCase_RegisterValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*usecase.RegisterInput)
		errorType error
	}{
		{
			name:      "bad email",
			mutate:    func(in *usecase.RegisterInput) { in.Email = "not-an-email" },
			errorType: domain.ErrInvalidEmail,
		},
		{
			name:      "bad phone",
			mutate:    func(in *usecase.RegisterInput) { in.PhoneNumber = "12" },
			errorType: domain.ErrInvalidPhoneNumber,
		},
		{
			name:      "weak password",
			mutate:    func(in *usecase.RegisterInput) { in.Password = "short" },
			errorType: domain.ErrPasswordTooWeak,
		},
		{
			name:      "password without digits",
			mutate:    func(in *usecase.RegisterInput) { in.Password = "NoDigitsHere" },
			errorType: domain.ErrPasswordTooWeak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, uc := newUserFixture()

			input := validRegisterInput()
			tt.mutate(&input)

			_, err := uc.Register(context.Background(), input)
			if !errors.Is(err, tt.errorType) {
				t.Fatalf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestUserUseCase_RegisterBlacklisted(t *testing.T) {
	ledger, blacklist, _, uc := newUserFixture()

	blacklist.CheckFunc = func(ctx context.Context, email string) (string, error) {
		return "identity found on karma blacklist", nil
	}

	_, err := uc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, domain.ErrBlacklisted) {
		t.Fatalf("expected ErrBlacklisted, got %v", err)
	}

	if _, err := ledger.GetUserByEmail(context.Background(), "ada@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Error("blacklisted user must not be persisted")
	}
}

func TestUserUseCase_RegisterDuplicate(t *testing.T) {
	_, _, _, uc := newUserFixture()

	if _, err := uc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := uc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	input := validRegisterInput()
	input.Email = "other@example.com"
	_, err = uc.Register(context.Background(), input)
	if !errors.Is(err, domain.ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}
}

func TestUserUseCase_BlacklistVerdictCached(t *testing.T) {
	_, blacklist, _, uc := newUserFixture()

	calls := 0
	blacklist.CheckFunc = func(ctx context.Context, email string) (string, error) {
		calls++
		return "reported default", nil
	}

	for i := 0; i < 3; i++ {
		_, err := uc.Register(context.Background(), validRegisterInput())
		if !errors.Is(err, domain.ErrBlacklisted) {
			t.Fatalf("expected ErrBlacklisted, got %v", err)
		}
	}

	if calls != 1 {
		t.Errorf("expected one upstream blacklist call, got %d", calls)
	}
}

func TestUserUseCase_VerifyOTP(t *testing.T) {
	ledger, _, _, uc := newUserFixture()

	user, err := uc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	stored, err := ledger.GetUserByEmail(context.Background(), user.Email)
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}

	if err := uc.VerifyOTP(context.Background(), user.Email, "000000"); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Errorf("expected ErrInvalidOTP for wrong code, got %v", err)
	}

	if err := uc.VerifyOTP(context.Background(), user.Email, stored.OTP); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	verified, _ := ledger.GetUserByEmail(context.Background(), user.Email)
	if !verified.Verified {
		t.Error("expected user to be verified")
	}
	if verified.OTP != "" {
		t.Error("expected OTP to be cleared after verification")
	}
}

func TestUserUseCase_VerifyOTPExpired(t *testing.T) {
	ledger, _, _, uc := newUserFixture()

	ledger.SeedUser(domain.User{
		ID:        "user-1",
		Email:     "ada@example.com",
		OTP:       "123456",
		OTPExpiry: time.Now().UTC().Add(-time.Minute),
	})

	err := uc.VerifyOTP(context.Background(), "ada@example.com", "123456")
	if !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP for expired code, got %v", err)
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	_, _, _, uc := newUserFixture()

	if _, err := uc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	user, err := uc.Authenticate(context.Background(), "ada@example.com", "Sup3rSecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.HashedPassword != "" {
		t.Error("authenticated user must not carry the password hash")
	}

	if _, err := uc.Authenticate(context.Background(), "ada@example.com", "WrongPass1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	if _, err := uc.Authenticate(context.Background(), "ghost@example.com", "Sup3rSecret"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown email, got %v", err)
	}
}
