// Package workflow implements the leave and overtime request lifecycle:
// creation, approval or denial, and the listings around it.
package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avopro-hr/hr-backend-go/internal/domain/document"
	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/notification"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/database"
)

type LeaveService struct {
	tx        database.Transactor
	users     user.Repository
	leaves    leave.LeaveRequestRepository
	notifier  notification.Service
	documents document.Service
}

func NewLeaveService(
	tx database.Transactor,
	users user.Repository,
	leaves leave.LeaveRequestRepository,
	notifier notification.Service,
	documents document.Service,
) *LeaveService {
	return &LeaveService{
		tx:        tx,
		users:     users,
		leaves:    leaves,
		notifier:  notifier,
		documents: documents,
	}
}

var _ leave.LeaveService = (*LeaveService)(nil)

// CreateLeaveRequest files a PENDING request for the caller. The owner row
// is locked for the overlap check and insert, so concurrent creations by one
// account are serialised.
func (s *LeaveService) CreateLeaveRequest(ctx context.Context, caller user.AuthenticatedCaller, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if !user.HasPermission(caller.Role, user.PermissionRequestCreate) {
		return leave.LeaveRequestResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	category := req.Category()
	start, end := req.Dates()

	var (
		owner   user.Account
		created leave.LeaveRequest
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		owner, err = s.users.LockByID(ctx, caller.AccountID)
		if err != nil {
			return err
		}
		if !owner.IsActive {
			return user.ErrAccountInactive
		}
		if err := category.CheckEligibility(owner); err != nil {
			return err
		}

		overlapping, err := s.leaves.HasOverlap(ctx, owner.ID, start, end)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingRequest
		}

		created, err = s.leaves.Create(ctx, leave.LeaveRequest{
			UserID:    owner.ID,
			Category:  category,
			StartDate: start,
			EndDate:   end,
			Reason:    req.Reason,
			Status:    request.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.notifier.NotifyApprovers(ctx, owner.ID,
		fmt.Sprintf("%s has submitted a new %s leave request.", owner.Name, category.DisplayName()),
		notification.LinkManageRequests)

	if created.UserName == "" {
		created.UserName = owner.Name
	}
	return leave.NewLeaveRequestResponse(created), nil
}

// DecideLeaveRequest approves or denies a PENDING request. Approval flips
// the status and deducts the owner's balance in one transaction; the status
// update runs first so a concurrent loser never deducts.
func (s *LeaveService) DecideLeaveRequest(ctx context.Context, caller user.AuthenticatedCaller, id string, decision request.Decision) (leave.LeaveRequestResponse, error) {
	if !user.CanDecide(caller.Role) {
		return leave.LeaveRequestResponse{}, user.ErrInsufficientPermissions
	}
	if !decision.IsValid() {
		return leave.LeaveRequestResponse{}, request.ErrInvalidDecision
	}

	var decided leave.LeaveRequest
	var err error
	if decision == request.DecisionApprove {
		err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			decided, err = s.leaves.UpdateStatus(ctx, id, request.StatusApproved, caller.AccountID)
			if err != nil {
				return err
			}
			kind, deducts := decided.Category.BalanceKind()
			if !deducts {
				return nil
			}
			if err := s.users.DecrementBalance(ctx, decided.UserID, kind, decided.Days()); err != nil {
				return fmt.Errorf("failed to deduct leave balance: %w", err)
			}
			return nil
		})
	} else {
		decided, err = s.leaves.UpdateStatus(ctx, id, request.StatusDenied, caller.AccountID)
	}
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if err := s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		RecipientID: decided.UserID,
		Message:     fmt.Sprintf("Your %s leave request has been %s.", decided.Category.DisplayName(), statusWord(decided.Status)),
		Link:        notification.LeaveLink(decided.ID),
		CreatedBy:   caller.AccountID,
	}); err != nil {
		slog.Error("failed to notify leave request owner", "leave_request_id", decided.ID, "error", err)
	}

	if decided.Status == request.StatusApproved {
		owner, err := s.users.GetByID(ctx, decided.UserID)
		if err != nil {
			slog.Error("failed to load owner for approval document", "leave_request_id", decided.ID, "error", err)
		} else {
			s.documents.DispatchApproval(ctx, decided, owner.Email)
		}
	}

	return leave.NewLeaveRequestResponse(decided), nil
}

func (s *LeaveService) ListMyLeaveRequests(ctx context.Context, caller user.AuthenticatedCaller) ([]leave.LeaveRequestResponse, error) {
	items, err := s.leaves.ListByUser(ctx, caller.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewLeaveRequestResponses(items), nil
}

func (s *LeaveService) GetLeaveRequest(ctx context.Context, caller user.AuthenticatedCaller, id string) (leave.LeaveRequestResponse, error) {
	lr, err := s.visibleLeaveRequest(ctx, caller, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(lr), nil
}

func (s *LeaveService) GetApprovalDocument(ctx context.Context, caller user.AuthenticatedCaller, id string) ([]byte, error) {
	lr, err := s.visibleLeaveRequest(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if lr.Status != request.StatusApproved {
		return nil, leave.ErrLeaveNotApproved
	}
	return s.documents.Open(ctx, lr)
}

// visibleLeaveRequest loads a request the caller owns or may decide.
func (s *LeaveService) visibleLeaveRequest(ctx context.Context, caller user.AuthenticatedCaller, id string) (leave.LeaveRequest, error) {
	lr, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.UserID != caller.AccountID && !user.CanDecide(caller.Role) {
		return leave.LeaveRequest{}, user.ErrInsufficientPermissions
	}
	return lr, nil
}
