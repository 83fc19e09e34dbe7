package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrOverlappingRequest   = errors.New("you already have a pending or approved leave request that overlaps with these dates")
	ErrMaternityRestricted  = errors.New("maternity leave is restricted to female employees")
	ErrPaternityRestricted  = errors.New("paternity leave is restricted to male employees")
	ErrLeaveNotApproved     = errors.New("leave request is not approved")
)
