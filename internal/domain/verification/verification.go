// Package verification exposes the public, unauthenticated view used to
// check that an approval document is genuine.
package verification

import (
	"context"
	"errors"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
)

var ErrApprovedRequestNotFound = errors.New("approved leave request not found")

// PublicView carries exactly the fields a verifier may see.
type PublicView struct {
	ID        string `json:"id"`
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	OwnerName string `json:"owner_name"`
}

func NewPublicView(l leave.LeaveRequest) PublicView {
	return PublicView{
		ID:        l.ID,
		LeaveType: string(l.Category),
		StartDate: l.StartDate.Format(validator.DateLayout),
		EndDate:   l.EndDate.Format(validator.DateLayout),
		Status:    string(l.Status),
		OwnerName: l.UserName,
	}
}

type Service interface {
	// GetApprovedRequest returns ErrApprovedRequestNotFound for unknown ids
	// and for requests that are not APPROVED alike.
	GetApprovedRequest(ctx context.Context, leaveRequestID string) (PublicView, error)
}
