// Package servicetest provides an in-memory store implementing the
// repository interfaces, for service tests.
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/notification"
	"github.com/avopro-hr/hr-backend-go/internal/domain/overtime"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

// Store holds every collection in memory. WithinTransaction serialises
// transactions and restores a snapshot when fn fails, which mirrors the
// row lock and rollback of the database.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	accounts      map[string]user.Account
	leaves        map[string]leave.LeaveRequest
	overtimes     map[string]overtime.OvertimeRequest
	notifications []notification.Notification
	clock         time.Time

	// FailDecrement makes DecrementBalance return the error.
	FailDecrement error
	// FailNotificationFor makes Create fail for the given recipient.
	FailNotificationFor map[string]error
}

func NewStore() *Store {
	return &Store{
		accounts:            make(map[string]user.Account),
		leaves:              make(map[string]leave.LeaveRequest),
		overtimes:           make(map[string]overtime.OvertimeRequest),
		clock:               time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		FailNotificationFor: make(map[string]error),
	}
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.cloneLocked()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.restoreLocked(snapshot)
		s.mu.Unlock()
		return err
	}
	return nil
}

type snapshot struct {
	accounts      map[string]user.Account
	leaves        map[string]leave.LeaveRequest
	overtimes     map[string]overtime.OvertimeRequest
	notifications []notification.Notification
}

func (s *Store) cloneLocked() snapshot {
	snap := snapshot{
		accounts:      make(map[string]user.Account, len(s.accounts)),
		leaves:        make(map[string]leave.LeaveRequest, len(s.leaves)),
		overtimes:     make(map[string]overtime.OvertimeRequest, len(s.overtimes)),
		notifications: append([]notification.Notification(nil), s.notifications...),
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	for k, v := range s.leaves {
		snap.leaves[k] = v
	}
	for k, v := range s.overtimes {
		snap.overtimes[k] = v
	}
	return snap
}

func (s *Store) restoreLocked(snap snapshot) {
	s.accounts = snap.accounts
	s.leaves = snap.leaves
	s.overtimes = snap.overtimes
	s.notifications = snap.notifications
}

// AddAccount seeds an account and returns it with ID and timestamps set.
func (s *Store) AddAccount(a user.Account) user.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = newID()
	}
	a.CreatedAt = s.tick()
	a.UpdatedAt = a.CreatedAt
	s.accounts[a.ID] = a
	return a
}

// Account returns the stored account.
func (s *Store) Account(id string) user.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id]
}

// AddLeave seeds a leave request.
func (s *Store) AddLeave(l leave.LeaveRequest) leave.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == "" {
		l.ID = newID()
	}
	if l.Status == "" {
		l.Status = request.StatusPending
	}
	l.CreatedAt = s.tick()
	l.UpdatedAt = l.CreatedAt
	s.leaves[l.ID] = l
	return s.withOwnerLocked(l)
}

// Leave returns the stored leave request.
func (s *Store) Leave(id string) leave.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withOwnerLocked(s.leaves[id])
}

// LeaveCount returns the number of stored leave requests.
func (s *Store) LeaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.leaves)
}

// AddOvertime seeds an overtime request.
func (s *Store) AddOvertime(o overtime.OvertimeRequest) overtime.OvertimeRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == "" {
		o.ID = newID()
	}
	if o.Status == "" {
		o.Status = request.StatusPending
	}
	o.CreatedAt = s.tick()
	o.UpdatedAt = o.CreatedAt
	s.overtimes[o.ID] = o
	o.UserName = s.accounts[o.UserID].Name
	return o
}

// Overtime returns the stored overtime request.
func (s *Store) Overtime(id string) overtime.OvertimeRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overtimes[id]
}

// NotificationsFor returns the recipient's notifications in insertion order.
func (s *Store) NotificationsFor(recipientID string) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []notification.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) withOwnerLocked(l leave.LeaveRequest) leave.LeaveRequest {
	if owner, ok := s.accounts[l.UserID]; ok {
		l.UserName = owner.Name
	}
	return l
}

func newestLeavesFirst(items []leave.LeaveRequest) {
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}

func newestOvertimesFirst(items []overtime.OvertimeRequest) {
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}

// NewAccount builds an account with the registration defaults.
func NewAccount(name string, role user.Role, gender user.Gender, active bool) user.Account {
	g := gender
	return user.Account{
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Name:     name,
		Role:     role,
		Gender:   &g,
		IsActive: active,
		Balances: user.DefaultLeaveBalances(),
	}
}
