package user

import "errors"

var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrEmailExists             = errors.New("email already registered")
	ErrAccountInactive         = errors.New("account is not active")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
