package auth

import (
	"context"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (user.AccountResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	// PurgeExpiredResetTokens clears reset tokens whose expiry has passed.
	PurgeExpiredResetTokens(ctx context.Context) (int64, error)
}
