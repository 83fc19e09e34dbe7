package verification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/domain/verification"
	"github.com/avopro-hr/hr-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetApprovedRequest(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	svc := NewVerificationService(store.Leaves())

	jane := store.AddAccount(servicetest.NewAccount("Jane Wanjiku", user.RoleEmployee, user.GenderFemale, true))
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	pending := store.AddLeave(leave.LeaveRequest{UserID: jane.ID, Category: leave.CategoryAnnual, StartDate: start, EndDate: end, Reason: "private", Status: request.StatusPending})
	denied := store.AddLeave(leave.LeaveRequest{UserID: jane.ID, Category: leave.CategoryAnnual, StartDate: start, EndDate: end, Reason: "private", Status: request.StatusDenied})
	approved := store.AddLeave(leave.LeaveRequest{UserID: jane.ID, Category: leave.CategoryAnnual, StartDate: start, EndDate: end, Reason: "private", Status: request.StatusApproved})

	for _, id := range []string{pending.ID, denied.ID, "0190a1b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b"} {
		_, err := svc.GetApprovedRequest(ctx, id)
		assert.ErrorIs(t, err, verification.ErrApprovedRequestNotFound)
	}

	view, err := svc.GetApprovedRequest(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, verification.PublicView{
		ID:        approved.ID,
		LeaveType: "ANNUAL",
		StartDate: "2024-06-01",
		EndDate:   "2024-06-05",
		Status:    "APPROVED",
		OwnerName: "Jane Wanjiku",
	}, view)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 6)
	assert.NotContains(t, fields, "reason")
}
