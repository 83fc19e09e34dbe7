package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/auth"
	"github.com/avopro-hr/hr-backend-go/internal/domain/notification"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/email"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenBytes = 32

// Config holds the auth settings that come from configuration.
type Config struct {
	FrontendURL   string
	ResetTokenTTL time.Duration
}

type AuthServiceImpl struct {
	user.Repository
	jwt.Service
	email    email.EmailService
	notifier notification.Service
	config   Config
	now      func() time.Time
}

func NewAuthService(userRepository user.Repository, jwtService jwt.Service, emailService email.EmailService, notifier notification.Service, cfg Config) auth.AuthService {
	return &AuthServiceImpl{
		Repository: userRepository,
		Service:    jwtService,
		email:      emailService,
		notifier:   notifier,
		config:     cfg,
		now:        time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// hashResetToken is the only form of a reset token that is stored.
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register creates an inactive EMPLOYEE account and asks approvers to
// review it.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return user.AccountResponse{}, err
	}

	_, err := a.GetByEmail(ctx, req.Email)
	if err == nil {
		return user.AccountResponse{}, user.ErrEmailExists
	}
	if !errors.Is(err, user.ErrAccountNotFound) {
		return user.AccountResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return user.AccountResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	gender := user.Gender(req.Gender)
	dob := req.ParsedDateOfBirth()
	created, err := a.Create(ctx, user.Account{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: &hashed,
		Role:         user.RoleEmployee,
		Gender:       &gender,
		DateOfBirth:  &dob,
		IsActive:     false,
		Balances:     user.DefaultLeaveBalances(),
	})
	if err != nil {
		return user.AccountResponse{}, err
	}

	a.notifier.NotifyApprovers(ctx, created.ID,
		fmt.Sprintf("New user registered: %s. Please review and activate their account.", created.Name),
		notification.LinkManageUsers)

	return user.NewAccountResponse(created), nil
}

// Login answers ErrInvalidCredentials for unknown emails, wrong passwords
// and inactive accounts alike.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := a.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrAccountNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	if account.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !account.IsActive {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.GenerateAccessToken(account)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	resp := user.NewAccountResponse(account)
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt - a.now().Unix(),
		User:                 &resp,
	}, nil
}

func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	parsed, err := jwtauth.VerifyToken(a.JWTAuth(), token)
	if err != nil || parsed.JwtID() == "" {
		return auth.ErrInvalidToken
	}
	a.RevokeToken(parsed.JwtID(), parsed.Expiration())
	return nil
}

// ForgotPassword never reveals whether the email belongs to an account.
// Repository and mail failures are logged only.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	account, err := a.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrAccountNotFound) {
			slog.Debug("password reset requested for unknown email")
			return nil
		}
		slog.Error("failed to look up account for password reset", "error", err)
		return nil
	}

	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	expiresAt := a.now().Add(a.config.ResetTokenTTL)

	if err := a.SetResetToken(ctx, account.ID, hashResetToken(token), expiresAt); err != nil {
		slog.Error("failed to store reset token", "user_id", account.ID, "error", err)
		return nil
	}

	resetLink := strings.TrimRight(a.config.FrontendURL, "/") + "/reset-password/" + token
	if err := a.email.SendPasswordReset(account.Email, account.Name, resetLink, expiresAt); err != nil {
		slog.Error("failed to send password reset email", "user_id", account.ID, "error", err)
	}
	return nil
}

func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	account, err := a.GetByResetToken(ctx, hashResetToken(req.Token), a.now())
	if err != nil {
		if errors.Is(err, user.ErrAccountNotFound) {
			return auth.ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return a.Repository.ResetPassword(ctx, account.ID, hashed)
}

func (a *AuthServiceImpl) PurgeExpiredResetTokens(ctx context.Context) (int64, error) {
	return a.ClearExpiredResetTokens(ctx, a.now())
}
