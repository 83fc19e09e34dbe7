package user

import (
	"context"
	"strings"
	"testing"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
	"github.com/avopro-hr/hr-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caller(a user.Account) user.AuthenticatedCaller {
	return user.AuthenticatedCaller{AccountID: a.ID, Role: a.Role}
}

func TestListAccounts(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	svc := NewUserService(store.Users())

	admin := store.AddAccount(servicetest.NewAccount("Otieno Admin", user.RoleAdmin, user.GenderMale, true))
	employee := store.AddAccount(servicetest.NewAccount("Jane", user.RoleEmployee, user.GenderFemale, true))

	_, err := svc.ListAccounts(ctx, caller(employee))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	accounts, err := svc.ListAccounts(ctx, caller(admin))
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, employee.ID, accounts[0].ID)
	assert.Equal(t, admin.ID, accounts[1].ID)
}

func TestUpdateAccount_Activation(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	svc := NewUserService(store.Users())

	hr := store.AddAccount(servicetest.NewAccount("Grace HR", user.RoleHR, user.GenderFemale, true))
	newHire := store.AddAccount(servicetest.NewAccount("New Hire", user.RoleEmployee, user.GenderMale, false))

	active := true
	updated, err := svc.UpdateAccount(ctx, caller(hr), newHire.ID, user.UpdateAccountRequest{IsActive: &active})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	assert.Equal(t, "New Hire", updated.Name)
	assert.True(t, store.Account(newHire.ID).IsActive)

	_, err = svc.UpdateAccount(ctx, caller(newHire), hr.ID, user.UpdateAccountRequest{IsActive: &active})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	role := "SUPERUSER"
	_, err = svc.UpdateAccount(ctx, caller(hr), newHire.ID, user.UpdateAccountRequest{Role: &role})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	_, err = svc.UpdateAccount(ctx, caller(hr), "missing", user.UpdateAccountRequest{IsActive: &active})
	assert.ErrorIs(t, err, user.ErrAccountNotFound)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	svc := NewUserService(store.Users())

	jane := store.AddAccount(servicetest.NewAccount("Jane", user.RoleEmployee, user.GenderFemale, true))

	profile, err := svc.GetProfile(ctx, caller(jane))
	require.NoError(t, err)
	assert.Equal(t, 25, profile.AnnualLeaveBalance)
	assert.Equal(t, 90, profile.MaternityLeaveBalance)
	require.NotNil(t, profile.Gender)
	assert.Equal(t, "FEMALE", *profile.Gender)
	assert.Nil(t, profile.Bio)

	bio := "Accounts team"
	profile, err = svc.UpdateBio(ctx, caller(jane), user.UpdateBioRequest{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, profile.Bio)
	assert.Equal(t, "Accounts team", *profile.Bio)

	empty := ""
	profile, err = svc.UpdateBio(ctx, caller(jane), user.UpdateBioRequest{Bio: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", *profile.Bio)

	tooLong := strings.Repeat("a", 501)
	_, err = svc.UpdateBio(ctx, caller(jane), user.UpdateBioRequest{Bio: &tooLong})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	_, err = svc.UpdateBio(ctx, caller(jane), user.UpdateBioRequest{})
	require.ErrorAs(t, err, &verrs)
}
