package dashboard

import (
	"context"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetSummary returns an ApproverSummary or an EmployeeSummary depending
	// on the caller's role.
	GetSummary(ctx context.Context, caller user.AuthenticatedCaller) (interface{}, error)
}
