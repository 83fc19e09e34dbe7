// Package document describes the official approval document issued for an
// approved leave request.
package document

import (
	"context"
	"errors"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
)

var ErrRenderFailed = errors.New("failed to render approval document")

// ApprovalDocument is everything printed on the document.
type ApprovalDocument struct {
	Request         leave.LeaveRequest
	ApprovedAt      time.Time
	VerificationURL string
}

// Renderer turns an approval into PDF bytes.
type Renderer interface {
	Render(doc ApprovalDocument) ([]byte, error)
}

type Service interface {
	// DispatchApproval renders, stores and mails the document for an
	// approved request in the background. Failures are logged only.
	DispatchApproval(ctx context.Context, approved leave.LeaveRequest, ownerEmail string)
	// Open returns the stored PDF of an approved request, rendering and
	// storing it first when absent.
	Open(ctx context.Context, approved leave.LeaveRequest) ([]byte, error)
	// Wait blocks until background dispatches have finished.
	Wait()
}
