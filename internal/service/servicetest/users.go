package servicetest

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
)

type users struct{ s *Store }

// Users returns the store's user.Repository.
func (s *Store) Users() user.Repository { return users{s} }

func (r users) GetByID(ctx context.Context, id string) (user.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return user.Account{}, user.ErrAccountNotFound
	}
	return a, nil
}

func (r users) GetByEmail(ctx context.Context, email string) (user.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return user.Account{}, user.ErrAccountNotFound
}

func (r users) Create(ctx context.Context, newAccount user.Account) (user.Account, error) {
	r.s.mu.Lock()
	for _, a := range r.s.accounts {
		if strings.EqualFold(a.Email, newAccount.Email) {
			r.s.mu.Unlock()
			return user.Account{}, user.ErrEmailExists
		}
	}
	r.s.mu.Unlock()
	return r.s.AddAccount(newAccount), nil
}

func (r users) List(ctx context.Context) ([]user.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]user.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r users) Update(ctx context.Context, id string, patch user.AccountPatch) (user.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return user.Account{}, user.ErrAccountNotFound
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Role != nil {
		a.Role = *patch.Role
	}
	if patch.IsActive != nil {
		a.IsActive = *patch.IsActive
	}
	a.UpdatedAt = r.s.tick()
	r.s.accounts[id] = a
	return a, nil
}

func (r users) UpdateBio(ctx context.Context, id string, bio string) (user.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return user.Account{}, user.ErrAccountNotFound
	}
	a.Bio = &bio
	r.s.accounts[id] = a
	return a, nil
}

func (r users) ListActiveApprovers(ctx context.Context) ([]user.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []user.Account
	for _, a := range r.s.accounts {
		if a.IsActive && user.CanDecide(a.Role) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// LockByID relies on WithinTransaction holding the store-wide lock.
func (r users) LockByID(ctx context.Context, id string) (user.Account, error) {
	return r.GetByID(ctx, id)
}

func (r users) DecrementBalance(ctx context.Context, id string, kind user.BalanceKind, days int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailDecrement != nil {
		return r.s.FailDecrement
	}
	a, ok := r.s.accounts[id]
	if !ok {
		return user.ErrAccountNotFound
	}
	a.Balances.Deduct(kind, days)
	r.s.accounts[id] = a
	return nil
}

func (r users) SetResetToken(ctx context.Context, id string, tokenHash string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return user.ErrAccountNotFound
	}
	a.ResetTokenHash = &tokenHash
	a.ResetTokenExpiry = &expiresAt
	r.s.accounts[id] = a
	return nil
}

func (r users) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (user.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if a.ResetTokenHash != nil && *a.ResetTokenHash == tokenHash &&
			a.ResetTokenExpiry != nil && a.ResetTokenExpiry.After(now) {
			return a, nil
		}
	}
	return user.Account{}, user.ErrAccountNotFound
}

func (r users) ResetPassword(ctx context.Context, id string, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return user.ErrAccountNotFound
	}
	a.PasswordHash = &passwordHash
	a.ResetTokenHash = nil
	a.ResetTokenExpiry = nil
	r.s.accounts[id] = a
	return nil
}

func (r users) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var cleared int64
	for id, a := range r.s.accounts {
		if a.ResetTokenExpiry != nil && !a.ResetTokenExpiry.After(now) {
			a.ResetTokenHash = nil
			a.ResetTokenExpiry = nil
			r.s.accounts[id] = a
			cleared++
		}
	}
	return cleared, nil
}

func (r users) CountInactive(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for _, a := range r.s.accounts {
		if !a.IsActive {
			n++
		}
	}
	return n, nil
}
