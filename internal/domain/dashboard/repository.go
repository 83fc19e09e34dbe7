package dashboard

import (
	"context"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
)

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// CountPendingLeaveRequests counts PENDING leave requests of every account.
	CountPendingLeaveRequests(ctx context.Context) (int, error)

	// CountInactiveAccounts counts accounts awaiting activation.
	CountInactiveAccounts(ctx context.Context) (int, error)

	// CountOnLeave counts APPROVED leave requests whose range covers day.
	CountOnLeave(ctx context.Context, day time.Time) (int, error)

	// NextApprovedLeave returns the account's earliest APPROVED leave
	// starting on or after from, or nil.
	NextApprovedLeave(ctx context.Context, userID string, from time.Time) (*leave.LeaveRequest, error)

	// CountPendingLeaveByUser counts the account's PENDING leave requests.
	CountPendingLeaveByUser(ctx context.Context, userID string) (int, error)
}
