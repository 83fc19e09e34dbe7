package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsurePending(t *testing.T) {
	assert.NoError(t, EnsurePending(StatusPending))

	err := EnsurePending(StatusApproved)
	assert.True(t, errors.Is(err, ErrAlreadyDecided))
	assert.Equal(t, "request has already been approved", err.Error())

	var decided *AlreadyDecidedError
	if assert.True(t, errors.As(EnsurePending(StatusDenied), &decided)) {
		assert.Equal(t, StatusDenied, decided.Status)
	}
}

func TestDecision(t *testing.T) {
	assert.True(t, DecisionApprove.IsValid())
	assert.True(t, DecisionDeny.IsValid())
	assert.False(t, Decision("PENDING").IsValid())
	assert.False(t, Decision("approved").IsValid())
	assert.Equal(t, StatusApproved, DecisionApprove.Status())
	assert.Equal(t, StatusDenied, DecisionDeny.Status())
}
