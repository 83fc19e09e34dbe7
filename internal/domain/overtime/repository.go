package overtime

import (
	"context"

	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
)

type OvertimeRequestRepository interface {
	Create(ctx context.Context, newRequest OvertimeRequest) (OvertimeRequest, error)
	GetByID(ctx context.Context, id string) (OvertimeRequest, error)
	// UpdateStatus only transitions PENDING rows; otherwise it returns
	// request.ErrAlreadyDecided.
	UpdateStatus(ctx context.Context, id string, status request.Status, deciderID string) (OvertimeRequest, error)
	ListByUser(ctx context.Context, userID string) ([]OvertimeRequest, error)
	ListAll(ctx context.Context) ([]OvertimeRequest, error)
}
