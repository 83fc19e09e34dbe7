package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/dashboard"
	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func newService(store *servicetest.Store, today string) *DashboardServiceImpl {
	svc := NewDashboardService(store.Dashboard(), store.Users()).(*DashboardServiceImpl)
	svc.now = func() time.Time { return date(today).Add(10 * time.Hour) }
	return svc
}

func TestGetSummary_Approver(t *testing.T) {
	store := servicetest.NewStore()
	hr := store.AddAccount(servicetest.NewAccount("Grace HR", user.RoleHR, user.GenderFemale, true))
	jane := store.AddAccount(servicetest.NewAccount("Jane", user.RoleEmployee, user.GenderFemale, true))
	store.AddAccount(servicetest.NewAccount("New Hire", user.RoleEmployee, user.GenderMale, false))

	store.AddLeave(leave.LeaveRequest{UserID: jane.ID, Category: leave.CategoryAnnual, StartDate: date("2024-06-01"), EndDate: date("2024-06-05"), Status: request.StatusApproved})
	store.AddLeave(leave.LeaveRequest{UserID: jane.ID, Category: leave.CategorySick, StartDate: date("2024-07-01"), EndDate: date("2024-07-01")})

	got, err := newService(store, "2024-06-03").GetSummary(context.Background(), user.AuthenticatedCaller{AccountID: hr.ID, Role: hr.Role})
	require.NoError(t, err)

	summary, ok := got.(dashboard.ApproverSummary)
	require.True(t, ok)
	assert.Equal(t, dashboard.ApproverSummary{
		Role:                 "HR",
		PendingLeaveRequests: 1,
		InactiveUsers:        1,
		UsersOnLeaveToday:    1,
	}, summary)
}

func TestGetSummary_Employee(t *testing.T) {
	store := servicetest.NewStore()
	jane := store.AddAccount(servicetest.NewAccount("Jane", user.RoleEmployee, user.GenderFemale, true))

	store.AddLeave(leave.LeaveRequest{UserID: jane.ID, Category: leave.CategoryAnnual, StartDate: date("2024-05-01"), EndDate: date("2024-05-02"), Status: request.StatusApproved})
	later := store.AddLeave(leave.LeaveRequest{UserID: jane.ID, Category: leave.CategoryAnnual, StartDate: date("2024-08-01"), EndDate: date("2024-08-02"), Status: request.StatusApproved})
	next := store.AddLeave(leave.LeaveRequest{UserID: jane.ID, Category: leave.CategorySick, StartDate: date("2024-06-10"), EndDate: date("2024-06-11"), Status: request.StatusApproved})
	store.AddLeave(leave.LeaveRequest{UserID: jane.ID, Category: leave.CategoryUnpaid, StartDate: date("2024-09-01"), EndDate: date("2024-09-01")})

	got, err := newService(store, "2024-06-03").GetSummary(context.Background(), user.AuthenticatedCaller{AccountID: jane.ID, Role: jane.Role})
	require.NoError(t, err)

	summary, ok := got.(dashboard.EmployeeSummary)
	require.True(t, ok)
	assert.Equal(t, "EMPLOYEE", summary.Role)
	assert.Equal(t, 1, summary.PendingRequestsCount)
	assert.Equal(t, 25, summary.AnnualLeaveBalance)
	assert.Equal(t, 15, summary.SickLeaveBalance)
	require.NotNil(t, summary.UpcomingLeave)
	assert.Equal(t, next.ID, summary.UpcomingLeave.ID)
	assert.NotEqual(t, later.ID, summary.UpcomingLeave.ID)
}

func TestGetSummary_EmployeeWithoutUpcomingLeave(t *testing.T) {
	store := servicetest.NewStore()
	jane := store.AddAccount(servicetest.NewAccount("Jane", user.RoleEmployee, user.GenderFemale, true))

	got, err := newService(store, "2024-06-03").GetSummary(context.Background(), user.AuthenticatedCaller{AccountID: jane.ID, Role: jane.Role})
	require.NoError(t, err)
	assert.Nil(t, got.(dashboard.EmployeeSummary).UpcomingLeave)
}

func TestGetSummary_UnknownEmployee(t *testing.T) {
	store := servicetest.NewStore()

	_, err := newService(store, "2024-06-03").GetSummary(context.Background(), user.AuthenticatedCaller{AccountID: "missing", Role: user.RoleEmployee})
	assert.ErrorIs(t, err, user.ErrAccountNotFound)
}
