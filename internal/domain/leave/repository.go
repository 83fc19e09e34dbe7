package leave

import (
	"context"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, newRequest LeaveRequest) (LeaveRequest, error)
	// GetByID returns the request joined with its owner's name.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// HasOverlap reports whether userID owns a PENDING or APPROVED request
	// whose inclusive range intersects [start, end].
	HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error)
	// UpdateStatus moves a PENDING request to status and records deciderID
	// as approver or denier. It returns request.ErrAlreadyDecided when the
	// row is no longer PENDING.
	UpdateStatus(ctx context.Context, id string, status request.Status, deciderID string) (LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	ListAll(ctx context.Context) ([]LeaveRequest, error)
	// GetApproved returns the request only when its status is APPROVED.
	GetApproved(ctx context.Context, id string) (LeaveRequest, error)
}
