package servicetest

import (
	"context"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/dashboard"
	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/notification"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
)

type notifications struct{ s *Store }

// Notifications returns the store's notification.Repository.
func (s *Store) Notifications() notification.Repository { return notifications{s} }

func (r notifications) Create(ctx context.Context, n *notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.FailNotificationFor[n.RecipientID]; err != nil {
		return err
	}
	if n.ID == "" {
		n.ID = newID()
	}
	n.IsRead = false
	n.CreatedAt = r.s.tick()
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

func (r notifications) ListByRecipient(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]notification.Notification, 0)
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		if n.RecipientID != recipientID {
			continue
		}
		if n.CreatedBy != nil {
			if creator, ok := r.s.accounts[*n.CreatedBy]; ok {
				name := creator.Name
				n.CreatorName = &name
			}
		}
		out = append(out, n)
	}
	return out, nil
}

func (r notifications) MarkAllAsRead(ctx context.Context, recipientID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var marked int64
	for i := range r.s.notifications {
		if r.s.notifications[i].RecipientID == recipientID && !r.s.notifications[i].IsRead {
			r.s.notifications[i].IsRead = true
			marked++
		}
	}
	return marked, nil
}

func (r notifications) CountUnread(ctx context.Context, recipientID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for _, item := range r.s.notifications {
		if item.RecipientID == recipientID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

type dashboards struct{ s *Store }

// Dashboard returns the store's dashboard.DashboardRepository.
func (s *Store) Dashboard() dashboard.DashboardRepository { return dashboards{s} }

func (r dashboards) CountPendingLeaveRequests(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for _, l := range r.s.leaves {
		if l.Status == request.StatusPending {
			n++
		}
	}
	return n, nil
}

func (r dashboards) CountInactiveAccounts(ctx context.Context) (int, error) {
	return users{r.s}.CountInactive(ctx)
}

func (r dashboards) CountOnLeave(ctx context.Context, day time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	owners := make(map[string]struct{})
	for _, l := range r.s.leaves {
		if l.Status == request.StatusApproved && l.Overlaps(day, day) {
			owners[l.UserID] = struct{}{}
		}
	}
	return len(owners), nil
}

func (r dashboards) NextApprovedLeave(ctx context.Context, userID string, from time.Time) (*leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var next *leave.LeaveRequest
	for _, l := range r.s.leaves {
		if l.UserID != userID || l.Status != request.StatusApproved || l.StartDate.Before(from) {
			continue
		}
		if next == nil || l.StartDate.Before(next.StartDate) {
			found := r.s.withOwnerLocked(l)
			next = &found
		}
	}
	return next, nil
}

func (r dashboards) CountPendingLeaveByUser(ctx context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for _, l := range r.s.leaves {
		if l.UserID == userID && l.Status == request.StatusPending {
			n++
		}
	}
	return n, nil
}
