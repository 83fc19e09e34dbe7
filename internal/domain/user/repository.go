package user

import (
	"context"
	"time"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	// Create returns ErrEmailExists when the email is taken.
	Create(ctx context.Context, newAccount Account) (Account, error)
	// List returns every account, newest first.
	List(ctx context.Context) ([]Account, error)
	Update(ctx context.Context, id string, patch AccountPatch) (Account, error)
	UpdateBio(ctx context.Context, id string, bio string) (Account, error)
	// ListActiveApprovers returns active ADMIN and HR accounts.
	ListActiveApprovers(ctx context.Context) ([]Account, error)
	// LockByID reads the account and holds a row lock until the surrounding
	// transaction ends.
	LockByID(ctx context.Context, id string) (Account, error)
	DecrementBalance(ctx context.Context, id string, kind BalanceKind, days int) error
	SetResetToken(ctx context.Context, id string, tokenHash string, expiresAt time.Time) error
	// GetByResetToken matches tokenHash only while its expiry is after now.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (Account, error)
	// ResetPassword stores the new hash and clears the reset-token fields.
	ResetPassword(ctx context.Context, id string, passwordHash string) error
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
	CountInactive(ctx context.Context) (int, error)
}
