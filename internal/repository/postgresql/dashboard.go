package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/dashboard"
	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) count(ctx context.Context, what, query string, args ...interface{}) (int, error) {
	q := GetQuerier(ctx, r.db)

	var n int
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", what, err)
	}
	return n, nil
}

func (r *dashboardRepositoryImpl) CountPendingLeaveRequests(ctx context.Context) (int, error) {
	return r.count(ctx, "pending leave requests",
		`SELECT COUNT(*) FROM leave_requests WHERE status = 'PENDING'`)
}

func (r *dashboardRepositoryImpl) CountInactiveAccounts(ctx context.Context) (int, error) {
	return r.count(ctx, "inactive accounts",
		`SELECT COUNT(*) FROM users WHERE is_active = FALSE`)
}

func (r *dashboardRepositoryImpl) CountOnLeave(ctx context.Context, day time.Time) (int, error) {
	return r.count(ctx, "accounts on leave",
		`SELECT COUNT(DISTINCT user_id) FROM leave_requests
		 WHERE status = 'APPROVED' AND start_date <= $1 AND end_date >= $1`, day)
}

func (r *dashboardRepositoryImpl) NextApprovedLeave(ctx context.Context, userID string, from time.Time) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+`
		WHERE lr.user_id = $1 AND lr.status = 'APPROVED' AND lr.start_date >= $2
		ORDER BY lr.start_date ASC
		LIMIT 1`, userID, from))
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get upcoming leave: %w", err)
	}
	return &lr, nil
}

func (r *dashboardRepositoryImpl) CountPendingLeaveByUser(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, "pending leave requests of account",
		`SELECT COUNT(*) FROM leave_requests WHERE user_id = $1 AND status = 'PENDING'`, userID)
}
