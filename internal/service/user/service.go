package user

import (
	"context"
	"fmt"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.Repository
}

func NewUserService(repo user.Repository) user.Service {
	return &UserServiceImpl{Repository: repo}
}

func (s *UserServiceImpl) ListAccounts(ctx context.Context, caller user.AuthenticatedCaller) ([]user.AccountResponse, error) {
	if !user.CanManageUsers(caller.Role) {
		return nil, user.ErrInsufficientPermissions
	}

	accounts, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	responses := make([]user.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, user.NewAccountResponse(a))
	}
	return responses, nil
}

// UpdateAccount applies an approver's partial edit. Activation is done by
// setting is_active.
func (s *UserServiceImpl) UpdateAccount(ctx context.Context, caller user.AuthenticatedCaller, id string, req user.UpdateAccountRequest) (user.AccountResponse, error) {
	if !user.CanManageUsers(caller.Role) {
		return user.AccountResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return user.AccountResponse{}, err
	}

	updated, err := s.Update(ctx, id, req.Patch())
	if err != nil {
		return user.AccountResponse{}, err
	}
	return user.NewAccountResponse(updated), nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, caller user.AuthenticatedCaller) (user.ProfileResponse, error) {
	account, err := s.GetByID(ctx, caller.AccountID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.NewProfileResponse(account), nil
}

func (s *UserServiceImpl) UpdateBio(ctx context.Context, caller user.AuthenticatedCaller, req user.UpdateBioRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	account, err := s.Repository.UpdateBio(ctx, caller.AccountID, *req.Bio)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.NewProfileResponse(account), nil
}
