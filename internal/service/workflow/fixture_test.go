package workflow

import (
	"testing"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/sse"
	notificationservice "github.com/avopro-hr/hr-backend-go/internal/service/notification"
	"github.com/avopro-hr/hr-backend-go/internal/service/servicetest"
)

type fixture struct {
	store     *servicetest.Store
	docs      *servicetest.Documents
	leaves    *LeaveService
	overtimes *OvertimeService
	feed      *FeedService

	owner    user.Account
	hr       user.Account
	employee user.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := servicetest.NewStore()
	docs := &servicetest.Documents{Content: []byte("%PDF-1.3")}
	notifier := notificationservice.NewNotificationService(store.Notifications(), store.Users(), sse.NewHub())

	return &fixture{
		store:     store,
		docs:      docs,
		leaves:    NewLeaveService(store, store.Users(), store.Leaves(), notifier, docs),
		overtimes: NewOvertimeService(store.Users(), store.Overtimes(), notifier),
		feed:      NewFeedService(store.Leaves(), store.Overtimes()),
		owner:     store.AddAccount(servicetest.NewAccount("Jane Wanjiku", user.RoleEmployee, user.GenderFemale, true)),
		hr:        store.AddAccount(servicetest.NewAccount("Grace Achieng", user.RoleHR, user.GenderFemale, true)),
		employee:  store.AddAccount(servicetest.NewAccount("Brian Kamau", user.RoleEmployee, user.GenderMale, true)),
	}
}

func callerOf(a user.Account) user.AuthenticatedCaller {
	return user.AuthenticatedCaller{AccountID: a.ID, Role: a.Role}
}

func leaveInput(category leave.Category, start, end string) leave.CreateLeaveRequestRequest {
	return leave.CreateLeaveRequestRequest{
		LeaveType: string(category),
		StartDate: start,
		EndDate:   end,
		Reason:    "Family matters",
	}
}
