package leave

import (
	"context"

	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
)

type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, caller user.AuthenticatedCaller, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	DecideLeaveRequest(ctx context.Context, caller user.AuthenticatedCaller, id string, decision request.Decision) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, caller user.AuthenticatedCaller) ([]LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, caller user.AuthenticatedCaller, id string) (LeaveRequestResponse, error)
	// GetApprovalDocument returns the PDF issued for an approved request.
	// Other statuses yield ErrLeaveNotApproved.
	GetApprovalDocument(ctx context.Context, caller user.AuthenticatedCaller, id string) ([]byte, error)
}
