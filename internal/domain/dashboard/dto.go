package dashboard

import "github.com/avopro-hr/hr-backend-go/internal/domain/leave"

// ApproverSummary is returned to ADMIN and HR callers.
type ApproverSummary struct {
	Role                 string `json:"role"`
	PendingLeaveRequests int    `json:"pending_leave_requests"`
	InactiveUsers        int    `json:"inactive_users"`
	UsersOnLeaveToday    int    `json:"users_on_leave_today"`
}

// EmployeeSummary is returned to every other caller.
type EmployeeSummary struct {
	Role                 string                      `json:"role"`
	UpcomingLeave        *leave.LeaveRequestResponse `json:"upcoming_leave"`
	PendingRequestsCount int                         `json:"pending_requests_count"`
	AnnualLeaveBalance   int                         `json:"annual_leave_balance"`
	SickLeaveBalance     int                         `json:"sick_leave_balance"`
}
