package workflow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/overtime"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

const (
	RequestTypeLeave    = "leave"
	RequestTypeOvertime = "overtime"
)

// FeedService merges leave and overtime requests into one listing for
// approvers.
type FeedService struct {
	leaves    leave.LeaveRequestRepository
	overtimes overtime.OvertimeRequestRepository
}

func NewFeedService(leaves leave.LeaveRequestRepository, overtimes overtime.OvertimeRequestRepository) *FeedService {
	return &FeedService{leaves: leaves, overtimes: overtimes}
}

type feedItem struct {
	createdAt time.Time
	id        string
	value     interface{}
}

// ListAllRequests returns every request, newest first. Items are
// LeaveRequestResponse or OvertimeRequestResponse with RequestType set.
func (s *FeedService) ListAllRequests(ctx context.Context, caller user.AuthenticatedCaller) ([]interface{}, error) {
	if !user.CanDecide(caller.Role) {
		return nil, user.ErrInsufficientPermissions
	}

	var (
		leaves    []leave.LeaveRequest
		overtimes []overtime.OvertimeRequest
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leaves, err = s.leaves.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		overtimes, err = s.overtimes.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to list overtime requests: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]feedItem, 0, len(leaves)+len(overtimes))
	for _, l := range leaves {
		resp := leave.NewLeaveRequestResponse(l)
		resp.RequestType = RequestTypeLeave
		items = append(items, feedItem{createdAt: l.CreatedAt, id: resp.ID, value: resp})
	}
	for _, o := range overtimes {
		resp := overtime.NewOvertimeRequestResponse(o)
		resp.RequestType = RequestTypeOvertime
		items = append(items, feedItem{createdAt: o.CreatedAt, id: resp.ID, value: resp})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].createdAt.Equal(items[j].createdAt) {
			return items[i].createdAt.After(items[j].createdAt)
		}
		return items[i].id > items[j].id
	})

	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, item.value)
	}
	return out, nil
}
