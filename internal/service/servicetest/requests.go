package servicetest

import (
	"context"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/overtime"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
)

type leaves struct{ s *Store }

// Leaves returns the store's leave.LeaveRequestRepository.
func (s *Store) Leaves() leave.LeaveRequestRepository { return leaves{s} }

func (r leaves) Create(ctx context.Context, newRequest leave.LeaveRequest) (leave.LeaveRequest, error) {
	newRequest.Status = request.StatusPending
	return r.s.AddLeave(newRequest), nil
}

func (r leaves) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.s.withOwnerLocked(l), nil
}

func (r leaves) HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.leaves {
		if l.UserID == userID && l.BlocksNewRequests() && l.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r leaves) UpdateStatus(ctx context.Context, id string, status request.Status, deciderID string) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if err := request.EnsurePending(l.Status); err != nil {
		return leave.LeaveRequest{}, err
	}
	l.Status = status
	decider := deciderID
	if status == request.StatusApproved {
		l.ApprovedBy = &decider
	} else {
		l.DeniedBy = &decider
	}
	l.UpdatedAt = r.s.tick()
	r.s.leaves[id] = l
	return r.s.withOwnerLocked(l), nil
}

func (r leaves) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]leave.LeaveRequest, 0)
	for _, l := range r.s.leaves {
		if l.UserID == userID {
			out = append(out, r.s.withOwnerLocked(l))
		}
	}
	newestLeavesFirst(out)
	return out, nil
}

func (r leaves) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]leave.LeaveRequest, 0, len(r.s.leaves))
	for _, l := range r.s.leaves {
		out = append(out, r.s.withOwnerLocked(l))
	}
	newestLeavesFirst(out)
	return out, nil
}

func (r leaves) GetApproved(ctx context.Context, id string) (leave.LeaveRequest, error) {
	l, err := r.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if l.Status != request.StatusApproved {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return l, nil
}

type overtimes struct{ s *Store }

// Overtimes returns the store's overtime.OvertimeRequestRepository.
func (s *Store) Overtimes() overtime.OvertimeRequestRepository { return overtimes{s} }

func (r overtimes) Create(ctx context.Context, newRequest overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	newRequest.Status = request.StatusPending
	return r.s.AddOvertime(newRequest), nil
}

func (r overtimes) GetByID(ctx context.Context, id string) (overtime.OvertimeRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.overtimes[id]
	if !ok {
		return overtime.OvertimeRequest{}, overtime.ErrOvertimeRequestNotFound
	}
	o.UserName = r.s.accounts[o.UserID].Name
	return o, nil
}

func (r overtimes) UpdateStatus(ctx context.Context, id string, status request.Status, deciderID string) (overtime.OvertimeRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.overtimes[id]
	if !ok {
		return overtime.OvertimeRequest{}, overtime.ErrOvertimeRequestNotFound
	}
	if err := request.EnsurePending(o.Status); err != nil {
		return overtime.OvertimeRequest{}, err
	}
	o.Status = status
	decider := deciderID
	if status == request.StatusApproved {
		o.ApprovedBy = &decider
	} else {
		o.DeniedBy = &decider
	}
	o.UpdatedAt = r.s.tick()
	r.s.overtimes[id] = o
	o.UserName = r.s.accounts[o.UserID].Name
	return o, nil
}

func (r overtimes) ListByUser(ctx context.Context, userID string) ([]overtime.OvertimeRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]overtime.OvertimeRequest, 0)
	for _, o := range r.s.overtimes {
		if o.UserID == userID {
			o.UserName = r.s.accounts[o.UserID].Name
			out = append(out, o)
		}
	}
	newestOvertimesFirst(out)
	return out, nil
}

func (r overtimes) ListAll(ctx context.Context) ([]overtime.OvertimeRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]overtime.OvertimeRequest, 0, len(r.s.overtimes))
	for _, o := range r.s.overtimes {
		o.UserName = r.s.accounts[o.UserID].Name
		out = append(out, o)
	}
	newestOvertimesFirst(out)
	return out, nil
}
