package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridianfs/meridian-backend/internal/auth"
	"github.com/meridianfs/meridian-backend/internal/config"
	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/identity"
	"github.com/meridianfs/meridian-backend/internal/notify"
	"github.com/meridianfs/meridian-backend/internal/repository"
)

// AccountService orchestrates registration, login, the OTP-gated password
// reset flow, and refresh-token rotation.
type AccountService struct {
	accountRepo repository.AccountRepository
	tokenRepo   repository.RefreshTokenRepository
	hasher      *auth.Hasher
	codes       *auth.CodeIssuer
	tokens      *auth.TokenIssuer
	notifier    notify.Notifier
	provider    identity.Provider
	cfg         *config.Config
}

func NewAccountService(
	repos *repository.Repositories,
	notifier notify.Notifier,
	provider identity.Provider,
	cfg *config.Config,
) *AccountService {
	return &AccountService{
		accountRepo: repos.Account,
		tokenRepo:   repos.RefreshToken,
		hasher:      auth.NewHasher(),
		codes:       auth.NewCodeIssuer(cfg.OTPTTL),
		tokens:      auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour),
		notifier:    notifier,
		provider:    provider,
		cfg:         cfg,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Account      *domain.Account
	AccessToken  string
	RefreshToken string
	IsNewUser    bool
}

// ResetChallenge describes a freshly issued password-reset code. The code
// itself travels only through the notification channel.
type ResetChallenge struct {
	Email     string
	ExpiresAt time.Time
}

// NormalizeEmail lower-cases and trims an email address. Lookups and
// uniqueness are case-insensitive throughout.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := NormalizeEmail(input.Email)

	existing, err := s.accountRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// Fresh accounts carry no reset code; one exists only between a
	// ForgotPassword request and its consumption or expiry.
	account := &domain.Account{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	result, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, err
	}
	result.IsNewUser = true
	return result, nil
}

func (s *AccountService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	account, err := s.accountRepo.GetByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown email and wrong password are indistinguishable.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(input.Password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, account)
}

// LoginWithGoogle feeds a provider profile through the same upsert path as
// Register: known email logs in, unknown email creates the account.
func (s *AccountService) LoginWithGoogle(ctx context.Context, code string) (*AuthResult, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("identity provider is not configured")
	}

	profile, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	email := NormalizeEmail(profile.Email)

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err == nil {
		return s.issueTokens(ctx, account)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// No password login for provider-created accounts until the user sets
	// one through the reset flow.
	randomSecret, err := auth.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	hashedPassword, err := s.hasher.Hash(randomSecret)
	if err != nil {
		return nil, err
	}

	account = &domain.Account{
		ID:           uuid.New(),
		Name:         profile.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	result, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, err
	}
	result.IsNewUser = true
	return result, nil
}

// ForgotPassword issues a new reset code, overwriting any prior one, and
// delivers it through the notifier. A delivery failure leaves the persisted
// code in place; re-requesting reissues a fresh code.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) (*ResetChallenge, error) {
	email = NormalizeEmail(email)

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	code, expiresAt, err := s.codes.Issue()
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.SetResetCode(ctx, account.ID, code, expiresAt); err != nil {
		return nil, err
	}

	if err := s.notifier.SendPasswordResetCode(ctx, account.Email, code, expiresAt); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}

	return &ResetChallenge{Email: account.Email, ExpiresAt: expiresAt}, nil
}

// VerifyOTP checks a reset code without consuming it.
func (s *AccountService) VerifyOTP(ctx context.Context, email, code string) error {
	account, err := s.accountRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	return checkResetCode(account, code)
}

// ResetPassword re-validates the code, swaps in the new password, and
// consumes the code so it cannot be replayed.
func (s *AccountService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	account, err := s.accountRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := checkResetCode(account, code); err != nil {
		return err
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.accountRepo.CompleteReset(ctx, account.ID, hashedPassword)
}

// checkResetCode is the single source of truth for whether a reset code is
// consumable: it must match the stored value and be unexpired. An account
// with no stored code never matches.
func checkResetCode(account *domain.Account, code string) error {
	if !account.HasResetCode() || code == "" || code != account.ResetCode {
		return domain.ErrInvalidCode
	}
	if time.Now().After(account.ResetCodeExpiresAt) {
		return domain.ErrCodeExpired
	}
	return nil
}

// RefreshTokens rotates a presented refresh token: the old record is revoked,
// never deleted, and a fresh access/refresh pair is issued.
func (s *AccountService) RefreshTokens(ctx context.Context, presented string) (*AuthResult, error) {
	record, err := s.tokenRepo.GetActiveByHash(ctx, auth.HashRefreshToken(presented))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, record.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, err
	}

	if err := s.tokenRepo.Revoke(ctx, record.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, account)
}

func (s *AccountService) Logout(ctx context.Context, accountID uuid.UUID) error {
	return s.tokenRepo.RevokeAllForAccount(ctx, accountID)
}

func (s *AccountService) GetAccountByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.tokenRepo.RevokeAllForAccount(ctx, id); err != nil {
		return err
	}
	err := s.accountRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// ValidateToken verifies an access token signature and expiry.
func (s *AccountService) ValidateToken(tokenString string) (uuid.UUID, error) {
	claims, err := s.tokens.ParseAccessToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := (*claims)["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing subject claim")
	}

	return uuid.Parse(sub)
}

func (s *AccountService) issueTokens(ctx context.Context, account *domain.Account) (*AuthResult, error) {
	accessToken, err := s.tokens.IssueAccessToken(account)
	if err != nil {
		return nil, err
	}

	refreshToken, err := auth.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		ID:        uuid.New(),
		AccountID: account.ID,
		TokenHash: auth.HashRefreshToken(refreshToken),
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenTTL),
		CreatedAt: time.Now(),
	}

	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &AuthResult{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
