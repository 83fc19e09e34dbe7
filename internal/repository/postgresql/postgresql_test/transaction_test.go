package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)
	tx := postgresql.NewTransactor(db)

	a := createAccount(t, db, "tx@example.com", user.RoleEmployee, user.GenderMale, true)
	boom := errors.New("boom")

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.LockByID(ctx, a.ID); err != nil {
			return err
		}
		if err := repo.DecrementBalance(ctx, a.ID, user.BalanceAnnual, 5); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Balances.Annual)
}

func TestTransactor_NestedCallsShareTransaction(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)
	tx := postgresql.NewTransactor(db)

	a := createAccount(t, db, "nested@example.com", user.RoleEmployee, user.GenderMale, true)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.DecrementBalance(ctx, a.ID, user.BalanceSick, 2); err != nil {
			return err
		}
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return errors.New("inner failure")
		})
	})
	require.Error(t, err)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Balances.Sick)
}
