package workflow

import (
	"context"
	"testing"

	"github.com/avopro-hr/hr-backend-go/internal/domain/notification"
	"github.com/avopro-hr/hr-backend-go/internal/domain/overtime"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overtimeInput(hours string) overtime.CreateOvertimeRequestRequest {
	return overtime.CreateOvertimeRequestRequest{
		Date:   "2024-06-12",
		Hours:  decimal.RequireFromString(hours),
		Reason: "Quarter close",
	}
}

func TestOvertimeLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.overtimes.CreateOvertimeRequest(ctx, callerOf(f.employee), overtimeInput("2.5"))
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusPending), created.Status)
	assert.Equal(t, 2.5, created.Hours)
	assert.Equal(t, "2024-06-12", created.Date)

	hrInbox := f.store.NotificationsFor(f.hr.ID)
	require.Len(t, hrInbox, 1)
	assert.Equal(t, "Brian Kamau has submitted a new overtime request.", hrInbox[0].Message)

	approved, err := f.overtimes.DecideOvertimeRequest(ctx, callerOf(f.hr), created.ID, request.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, f.hr.ID, *approved.ApprovedBy)

	inbox := f.store.NotificationsFor(f.employee.ID)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Your overtime request for 2.5 hours has been approved.", inbox[0].Message)
	require.NotNil(t, inbox[0].Link)
	assert.Equal(t, notification.LinkOvertime, *inbox[0].Link)

	_, err = f.overtimes.DecideOvertimeRequest(ctx, callerOf(f.hr), created.ID, request.DecisionDeny)
	var stateErr *request.AlreadyDecidedError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, request.StatusApproved, stateErr.Status)

	mine, err := f.overtimes.ListMyOvertimeRequests(ctx, callerOf(f.employee))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, string(request.StatusApproved), mine[0].Status)
}

func TestCreateOvertimeRequest_HoursBounds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, hours := range []string{"0", "0.4", "24.5"} {
		_, err := f.overtimes.CreateOvertimeRequest(ctx, callerOf(f.employee), overtimeInput(hours))
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, hours)
		assert.Contains(t, verrs.ToMap(), "hours")
	}

	for _, hours := range []string{"0.5", "24"} {
		_, err := f.overtimes.CreateOvertimeRequest(ctx, callerOf(f.employee), overtimeInput(hours))
		assert.NoError(t, err, hours)
	}
}

func TestDecideOvertimeRequest_RequiresDecider(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.overtimes.CreateOvertimeRequest(ctx, callerOf(f.employee), overtimeInput("3"))
	require.NoError(t, err)

	_, err = f.overtimes.DecideOvertimeRequest(ctx, callerOf(f.owner), created.ID, request.DecisionDeny)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	assert.Equal(t, request.StatusPending, f.store.Overtime(created.ID).Status)

	denied, err := f.overtimes.DecideOvertimeRequest(ctx, callerOf(f.hr), created.ID, request.DecisionDeny)
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusDenied), denied.Status)
	assert.Equal(t, "Your overtime request for 3 hours has been denied.", f.store.NotificationsFor(f.employee.ID)[0].Message)
}
