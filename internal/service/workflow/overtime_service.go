package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avopro-hr/hr-backend-go/internal/domain/notification"
	"github.com/avopro-hr/hr-backend-go/internal/domain/overtime"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
)

type OvertimeService struct {
	users     user.Repository
	overtimes overtime.OvertimeRequestRepository
	notifier  notification.Service
}

func NewOvertimeService(users user.Repository, overtimes overtime.OvertimeRequestRepository, notifier notification.Service) *OvertimeService {
	return &OvertimeService{
		users:     users,
		overtimes: overtimes,
		notifier:  notifier,
	}
}

var _ overtime.OvertimeService = (*OvertimeService)(nil)

func (s *OvertimeService) CreateOvertimeRequest(ctx context.Context, caller user.AuthenticatedCaller, req overtime.CreateOvertimeRequestRequest) (overtime.OvertimeRequestResponse, error) {
	if !user.HasPermission(caller.Role, user.PermissionRequestCreate) {
		return overtime.OvertimeRequestResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}

	owner, err := s.users.GetByID(ctx, caller.AccountID)
	if err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}
	if !owner.IsActive {
		return overtime.OvertimeRequestResponse{}, user.ErrAccountInactive
	}

	created, err := s.overtimes.Create(ctx, overtime.OvertimeRequest{
		UserID: owner.ID,
		Date:   req.WorkDate(),
		Hours:  req.Hours,
		Reason: req.Reason,
		Status: request.StatusPending,
	})
	if err != nil {
		return overtime.OvertimeRequestResponse{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	s.notifier.NotifyApprovers(ctx, owner.ID,
		fmt.Sprintf("%s has submitted a new overtime request.", owner.Name),
		notification.LinkManageRequests)

	if created.UserName == "" {
		created.UserName = owner.Name
	}
	return overtime.NewOvertimeRequestResponse(created), nil
}

// DecideOvertimeRequest is a single conditional update; overtime carries no
// balance.
func (s *OvertimeService) DecideOvertimeRequest(ctx context.Context, caller user.AuthenticatedCaller, id string, decision request.Decision) (overtime.OvertimeRequestResponse, error) {
	if !user.CanDecide(caller.Role) {
		return overtime.OvertimeRequestResponse{}, user.ErrInsufficientPermissions
	}
	if !decision.IsValid() {
		return overtime.OvertimeRequestResponse{}, request.ErrInvalidDecision
	}

	decided, err := s.overtimes.UpdateStatus(ctx, id, decision.Status(), caller.AccountID)
	if err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}

	if err := s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		RecipientID: decided.UserID,
		Message:     fmt.Sprintf("Your overtime request for %s hours has been %s.", decided.Hours.String(), statusWord(decided.Status)),
		Link:        notification.LinkOvertime,
		CreatedBy:   caller.AccountID,
	}); err != nil {
		slog.Error("failed to notify overtime request owner", "overtime_request_id", decided.ID, "error", err)
	}

	return overtime.NewOvertimeRequestResponse(decided), nil
}

func (s *OvertimeService) ListMyOvertimeRequests(ctx context.Context, caller user.AuthenticatedCaller) ([]overtime.OvertimeRequestResponse, error) {
	items, err := s.overtimes.ListByUser(ctx, caller.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	return overtime.NewOvertimeRequestResponses(items), nil
}

func statusWord(s request.Status) string {
	if s == request.StatusApproved {
		return "approved"
	}
	return "denied"
}
