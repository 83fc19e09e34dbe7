package notification

import "errors"

var (
	ErrRecipientRequired = errors.New("notification recipient is required")
	ErrMessageRequired   = errors.New("notification message is required")
)
