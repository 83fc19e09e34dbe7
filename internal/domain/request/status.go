// Package request holds the lifecycle shared by leave and overtime requests.
package request

import (
	"errors"
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDenied   Status = "DENIED"
)

// Decision is the outcome an approver applies to a pending request.
type Decision string

const (
	DecisionApprove Decision = "APPROVED"
	DecisionDeny    Decision = "DENIED"
)

func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionDeny
}

// Status returns the terminal status the decision leads to.
func (d Decision) Status() Status {
	return Status(d)
}

var (
	// ErrAlreadyDecided matches any AlreadyDecidedError through errors.Is.
	ErrAlreadyDecided  = errors.New("request has already been decided")
	ErrInvalidDecision = errors.New("status must be APPROVED or DENIED")
)

// AlreadyDecidedError reports an attempt to decide a request that has left
// PENDING.
type AlreadyDecidedError struct {
	Status Status
}

func (e *AlreadyDecidedError) Error() string {
	return fmt.Sprintf("request has already been %s", strings.ToLower(string(e.Status)))
}

func (e *AlreadyDecidedError) Is(target error) bool {
	return target == ErrAlreadyDecided
}

// EnsurePending returns an AlreadyDecidedError unless s is PENDING.
func EnsurePending(s Status) error {
	if s != StatusPending {
		return &AlreadyDecidedError{Status: s}
	}
	return nil
}
