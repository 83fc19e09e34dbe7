package user

import "context"

type Service interface {
	ListAccounts(ctx context.Context, caller AuthenticatedCaller) ([]AccountResponse, error)
	UpdateAccount(ctx context.Context, caller AuthenticatedCaller, id string, req UpdateAccountRequest) (AccountResponse, error)
	GetProfile(ctx context.Context, caller AuthenticatedCaller) (ProfileResponse, error)
	UpdateBio(ctx context.Context, caller AuthenticatedCaller, req UpdateBioRequest) (ProfileResponse, error)
}
