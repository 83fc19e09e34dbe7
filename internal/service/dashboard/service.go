package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/dashboard"
	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	users user.Repository
	now   func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, users user.Repository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		users:               users,
		now:                 time.Now,
	}
}

func (s *DashboardServiceImpl) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// GetSummary runs the role's counts in parallel
func (s *DashboardServiceImpl) GetSummary(ctx context.Context, caller user.AuthenticatedCaller) (interface{}, error) {
	if user.CanDecide(caller.Role) {
		return s.approverSummary(ctx, caller)
	}
	return s.employeeSummary(ctx, caller)
}

func (s *DashboardServiceImpl) approverSummary(ctx context.Context, caller user.AuthenticatedCaller) (dashboard.ApproverSummary, error) {
	summary := dashboard.ApproverSummary{Role: string(caller.Role)}
	today := s.today()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.CountPendingLeaveRequests(gctx)
		if err != nil {
			return err
		}
		summary.PendingLeaveRequests = n
		return nil
	})
	g.Go(func() error {
		n, err := s.CountInactiveAccounts(gctx)
		if err != nil {
			return err
		}
		summary.InactiveUsers = n
		return nil
	})
	g.Go(func() error {
		n, err := s.CountOnLeave(gctx, today)
		if err != nil {
			return err
		}
		summary.UsersOnLeaveToday = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.ApproverSummary{}, fmt.Errorf("failed to build approver summary: %w", err)
	}
	return summary, nil
}

func (s *DashboardServiceImpl) employeeSummary(ctx context.Context, caller user.AuthenticatedCaller) (dashboard.EmployeeSummary, error) {
	summary := dashboard.EmployeeSummary{Role: string(caller.Role)}
	today := s.today()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		account, err := s.users.GetByID(gctx, caller.AccountID)
		if err != nil {
			return err
		}
		summary.AnnualLeaveBalance = account.Balances.Annual
		summary.SickLeaveBalance = account.Balances.Sick
		return nil
	})
	g.Go(func() error {
		next, err := s.NextApprovedLeave(gctx, caller.AccountID, today)
		if err != nil {
			return err
		}
		if next != nil {
			resp := leave.NewLeaveRequestResponse(*next)
			summary.UpcomingLeave = &resp
		}
		return nil
	})
	g.Go(func() error {
		n, err := s.CountPendingLeaveByUser(gctx, caller.AccountID)
		if err != nil {
			return err
		}
		summary.PendingRequestsCount = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.EmployeeSummary{}, fmt.Errorf("failed to build employee summary: %w", err)
	}
	return summary, nil
}
