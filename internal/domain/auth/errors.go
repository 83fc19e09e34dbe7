package auth

import "errors"

var (
	// ErrInvalidCredentials also covers inactive accounts so that login does
	// not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials or account not activated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidResetToken  = errors.New("invalid or expired password reset token")
)
