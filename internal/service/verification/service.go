package verification

import (
	"context"
	"errors"
	"fmt"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/verification"
)

type service struct {
	leaves leave.LeaveRequestRepository
}

func NewVerificationService(leaves leave.LeaveRequestRepository) verification.Service {
	return &service{leaves: leaves}
}

// GetApprovedRequest filters on APPROVED in the query itself, so pending
// and denied requests are never loaded.
func (s *service) GetApprovedRequest(ctx context.Context, leaveRequestID string) (verification.PublicView, error) {
	lr, err := s.leaves.GetApproved(ctx, leaveRequestID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return verification.PublicView{}, verification.ErrApprovedRequestNotFound
		}
		return verification.PublicView{}, fmt.Errorf("failed to load approved leave request: %w", err)
	}
	return verification.NewPublicView(lr), nil
}
