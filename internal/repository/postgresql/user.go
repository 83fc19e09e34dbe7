package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const accountColumns = `
	id, email, name, password_hash, role, gender, date_of_birth, bio, is_active,
	reset_token_hash, reset_token_expiry,
	annual_leave_balance, sick_leave_balance, maternity_leave_balance,
	paternity_leave_balance, compassionate_leave_balance, unpaid_leave_balance,
	created_at, updated_at`

var balanceColumns = map[user.BalanceKind]string{
	user.BalanceAnnual:        "annual_leave_balance",
	user.BalanceSick:          "sick_leave_balance",
	user.BalanceMaternity:     "maternity_leave_balance",
	user.BalancePaternity:     "paternity_leave_balance",
	user.BalanceCompassionate: "compassionate_leave_balance",
	user.BalanceUnpaid:        "unpaid_leave_balance",
}

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

func scanAccount(row pgx.Row) (user.Account, error) {
	var a user.Account
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.PasswordHash,
		&a.Role,
		&a.Gender,
		&a.DateOfBirth,
		&a.Bio,
		&a.IsActive,
		&a.ResetTokenHash,
		&a.ResetTokenExpiry,
		&a.Balances.Annual,
		&a.Balances.Sick,
		&a.Balances.Maternity,
		&a.Balances.Paternity,
		&a.Balances.Compassionate,
		&a.Balances.Unpaid,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Account{}, user.ErrAccountNotFound
		}
		return user.Account{}, err
	}
	return a, nil
}

func (r *userRepositoryImpl) queryAccounts(ctx context.Context, query string, args ...interface{}) ([]user.Account, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]user.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// GetByID implements user.Repository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.Account, error) {
	q := GetQuerier(ctx, r.db)
	return scanAccount(q.QueryRow(ctx, `SELECT `+accountColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail implements user.Repository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.Account, error) {
	q := GetQuerier(ctx, r.db)
	return scanAccount(q.QueryRow(ctx, `SELECT `+accountColumns+` FROM users WHERE email = $1`, email))
}

// Create implements user.Repository.
func (r *userRepositoryImpl) Create(ctx context.Context, newAccount user.Account) (user.Account, error) {
	q := GetQuerier(ctx, r.db)

	if newAccount.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return user.Account{}, fmt.Errorf("generate account id: %w", err)
		}
		newAccount.ID = id.String()
	}

	query := `
		INSERT INTO users (
			id, email, name, password_hash, role, gender, date_of_birth, bio, is_active,
			annual_leave_balance, sick_leave_balance, maternity_leave_balance,
			paternity_leave_balance, compassionate_leave_balance, unpaid_leave_balance
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + accountColumns

	b := newAccount.Balances
	created, err := scanAccount(q.QueryRow(ctx, query,
		newAccount.ID,
		newAccount.Email,
		newAccount.Name,
		newAccount.PasswordHash,
		newAccount.Role,
		newAccount.Gender,
		newAccount.DateOfBirth,
		newAccount.Bio,
		newAccount.IsActive,
		b.Annual, b.Sick, b.Maternity, b.Paternity, b.Compassionate, b.Unpaid,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.Account{}, user.ErrEmailExists
		}
		return user.Account{}, err
	}
	return created, nil
}

// List implements user.Repository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM users ORDER BY created_at DESC, id DESC`)
}

// Update implements user.Repository.
func (r *userRepositoryImpl) Update(ctx context.Context, id string, patch user.AccountPatch) (user.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = COALESCE($2, name),
			role = COALESCE($3, role),
			is_active = COALESCE($4, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns

	var role *string
	if patch.Role != nil {
		s := string(*patch.Role)
		role = &s
	}
	return scanAccount(q.QueryRow(ctx, query, id, patch.Name, role, patch.IsActive))
}

// UpdateBio implements user.Repository.
func (r *userRepositoryImpl) UpdateBio(ctx context.Context, id string, bio string) (user.Account, error) {
	q := GetQuerier(ctx, r.db)
	return scanAccount(q.QueryRow(ctx,
		`UPDATE users SET bio = $2, updated_at = NOW() WHERE id = $1 RETURNING `+accountColumns,
		id, bio))
}

// ListActiveApprovers implements user.Repository.
func (r *userRepositoryImpl) ListActiveApprovers(ctx context.Context) ([]user.Account, error) {
	return r.queryAccounts(ctx,
		`SELECT `+accountColumns+` FROM users WHERE role IN ('ADMIN', 'HR') AND is_active = TRUE ORDER BY created_at`)
}

// LockByID implements user.Repository.
func (r *userRepositoryImpl) LockByID(ctx context.Context, id string) (user.Account, error) {
	q := GetQuerier(ctx, r.db)
	return scanAccount(q.QueryRow(ctx, `SELECT `+accountColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
}

// DecrementBalance implements user.Repository.
func (r *userRepositoryImpl) DecrementBalance(ctx context.Context, id string, kind user.BalanceKind, days int) error {
	column, ok := balanceColumns[kind]
	if !ok {
		return fmt.Errorf("unknown balance kind %q", kind)
	}

	q := GetQuerier(ctx, r.db)
	query := fmt.Sprintf(`UPDATE users SET %[1]s = %[1]s - $2, updated_at = NOW() WHERE id = $1`, column)
	tag, err := q.Exec(ctx, query, id, days)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrAccountNotFound
	}
	return nil
}

// SetResetToken implements user.Repository.
func (r *userRepositoryImpl) SetResetToken(ctx context.Context, id string, tokenHash string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE users
		SET reset_token_hash = $2, reset_token_expiry = $3, updated_at = NOW()
		WHERE id = $1
	`, id, tokenHash, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrAccountNotFound
	}
	return nil
}

// GetByResetToken implements user.Repository.
func (r *userRepositoryImpl) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (user.Account, error) {
	q := GetQuerier(ctx, r.db)
	return scanAccount(q.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM users WHERE reset_token_hash = $1 AND reset_token_expiry > $2`,
		tokenHash, now))
}

// ResetPassword implements user.Repository.
func (r *userRepositoryImpl) ResetPassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, reset_token_hash = NULL, reset_token_expiry = NULL, updated_at = NOW()
		WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrAccountNotFound
	}
	return nil
}

// ClearExpiredResetTokens implements user.Repository.
func (r *userRepositoryImpl) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE users
		SET reset_token_hash = NULL, reset_token_expiry = NULL
		WHERE reset_token_expiry IS NOT NULL AND reset_token_expiry <= $1
	`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountInactive implements user.Repository.
func (r *userRepositoryImpl) CountInactive(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active = FALSE`).Scan(&count)
	return count, err
}
