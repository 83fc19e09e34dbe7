package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/database"
	"github.com/avopro-hr/hr-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.EnsureSchema(ctx, db))
	_, err = db.Exec(ctx, `TRUNCATE TABLE notifications, overtime_requests, leave_requests, users CASCADE`)
	require.NoError(t, err)

	return db
}

func createAccount(t *testing.T, db *database.DB, email string, role user.Role, gender user.Gender, active bool) user.Account {
	t.Helper()

	hash := "$2a$10$abcdefghijklmnopqrstuv"
	dob := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	a, err := postgresql.NewUserRepository(db).Create(context.Background(), user.Account{
		Email:        email,
		Name:         "Test " + string(role),
		PasswordHash: &hash,
		Role:         role,
		Gender:       &gender,
		DateOfBirth:  &dob,
		IsActive:     active,
		Balances:     user.DefaultLeaveBalances(),
	})
	require.NoError(t, err)
	return a
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
