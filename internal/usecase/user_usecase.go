package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/gowallet/internal/domain"
)

// UserUseCase handles registration, verification and login.
type UserUseCase struct {
	userRepo    UserRepository
	accountUC   *AccountUseCase
	blacklist   BlacklistChecker
	notifier    Notifier
	cache       Cache
	idGen       IDGenerator
	otpLifetime time.Duration
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	userRepo UserRepository,
	accountUC *AccountUseCase,
	blacklist BlacklistChecker,
	notifier Notifier,
	cache Cache,
	idGen IDGenerator,
) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		accountUC:   accountUC,
		blacklist:   blacklist,
		notifier:    notifier,
		cache:       cache,
		idGen:       idGen,
		otpLifetime: 10 * time.Minute,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	City        string
	Password    string
	Role        domain.Role
}

// Register screens the email against the karma blacklist, creates the user
// and opens their wallet account. The OTP email is dispatched
// fire-and-forget: a mail failure never unwinds the registration.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePhoneNumber(input.PhoneNumber); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if input.Role == "" {
		input.Role = domain.RoleUser
	}

	if !input.Role.IsValid() {
		return nil, domain.ErrUnauthorized
	}

	reason, err := uc.checkBlacklist(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if reason != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrBlacklisted, reason)
	}

	existing, err := uc.userRepo.GetByEmailOrPhone(ctx, input.Email, input.PhoneNumber)
	if err == nil && existing != nil {
		if existing.Email == strings.ToLower(input.Email) {
			return nil, domain.ErrEmailTaken
		}

		return nil, domain.ErrPhoneTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	otp := generateOTP()
	now := time.Now().UTC()

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          strings.ToLower(input.Email),
		PhoneNumber:    input.PhoneNumber,
		City:           strings.ToLower(input.City),
		Role:           input.Role,
		HashedPassword: string(hashed),
		OTP:            otp,
		OTPExpiry:      now.Add(uc.otpLifetime),
		Verified:       false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	_, err = uc.accountUC.CreateAccount(ctx, CreateAccountInput{
		UserID:        user.ID,
		AccountName:   fmt.Sprintf("%s %s", strings.ToLower(input.FirstName), strings.ToLower(input.LastName)),
		AccountNumber: AccountNumberFromPhone(input.PhoneNumber),
		BankName:      "demo credit",
	})
	if err != nil {
		return nil, err
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := uc.notifier.Send(sendCtx, user.Email, "Verify OTP", fmt.Sprintf("Kindly verify your email with the OTP below\n%s", otp)); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("otp email dispatch failed")
		}
	}()

	user.HashedPassword = ""

	return user, nil
}

// VerifyOTP marks a user verified when the submitted OTP matches and has
// not expired.
func (uc *UserUseCase) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.OTP != otp || time.Now().UTC().After(user.OTPExpiry) {
		return domain.ErrInvalidOTP
	}

	user.Verified = true
	user.OTP = ""
	user.UpdatedAt = time.Now().UTC()

	return uc.userRepo.Update(ctx, user)
}

// Authenticate verifies user credentials.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	user.HashedPassword = ""

	return user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""

	return user, nil
}

// ListUsers lists users with pagination.
func (uc *UserUseCase) ListUsers(ctx context.Context, page, size int) ([]*domain.User, error) {
	page, size = domain.ValidatePagination(page, size)

	users, err := uc.userRepo.List(ctx, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		user.HashedPassword = ""
	}

	return users, nil
}

func (uc *UserUseCase) checkBlacklist(ctx context.Context, email string) (string, error) {
	key := "karma:" + strings.ToLower(email)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, key); err == nil {
			if cached == "clear" {
				return "", nil
			}

			return cached, nil
		}
	}

	reason, err := uc.blacklist.Check(ctx, email)
	if err != nil {
		return "", err
	}

	if uc.cache != nil {
		value := reason
		if value == "" {
			value = "clear"
		}

		if err := uc.cache.Set(ctx, key, value, BlacklistCacheTTL); err != nil {
			log.Warn().Err(err).Msg("blacklist cache write failed")
		}
	}

	return reason, nil
}

// AccountNumberFromPhone derives a 10-digit account number from the user's
// phone number, the same scheme the provisioning flow has always used.
func AccountNumberFromPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	s := digits.String()
	if len(s) > 10 {
		s = s[len(s)-10:]
	}

	return s
}

func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % 1000000)
	}

	return fmt.Sprintf("%06d", n.Int64())
}
