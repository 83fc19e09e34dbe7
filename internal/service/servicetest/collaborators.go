package servicetest

import (
	"context"
	"sync"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/email"
)

// SentMail is one message captured by Mailer.
type SentMail struct {
	To         string
	Kind       string
	ResetLink  string
	Approval   email.LeaveApprovalData
	Attachment email.Attachment
}

// Mailer records messages instead of sending them.
type Mailer struct {
	mu   sync.Mutex
	Sent []SentMail
	Err  error
}

var _ email.EmailService = (*Mailer)(nil)

func (m *Mailer) SendPasswordReset(to, name, resetLink string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{To: to, Kind: "password_reset", ResetLink: resetLink})
	return nil
}

func (m *Mailer) SendLeaveApproval(to string, data email.LeaveApprovalData, document email.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{To: to, Kind: "leave_approval", Approval: data, Attachment: document})
	return nil
}

// Messages returns a copy of the recorded messages.
func (m *Mailer) Messages() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.Sent...)
}

// Dispatch is one call captured by Documents.
type Dispatch struct {
	Request    leave.LeaveRequest
	OwnerEmail string
}

// Documents records approval dispatches and serves canned PDFs.
type Documents struct {
	mu         sync.Mutex
	Dispatched []Dispatch
	Content    []byte
}

func (d *Documents) DispatchApproval(ctx context.Context, approved leave.LeaveRequest, ownerEmail string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Dispatched = append(d.Dispatched, Dispatch{Request: approved, OwnerEmail: ownerEmail})
}

func (d *Documents) Open(ctx context.Context, approved leave.LeaveRequest) ([]byte, error) {
	return d.Content, nil
}

func (d *Documents) Wait() {}

// Dispatches returns a copy of the recorded dispatches.
func (d *Documents) Dispatches() []Dispatch {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Dispatch(nil), d.Dispatched...)
}
