package overtime

import (
	"context"

	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
)

type OvertimeService interface {
	CreateOvertimeRequest(ctx context.Context, caller user.AuthenticatedCaller, req CreateOvertimeRequestRequest) (OvertimeRequestResponse, error)
	DecideOvertimeRequest(ctx context.Context, caller user.AuthenticatedCaller, id string, decision request.Decision) (OvertimeRequestResponse, error)
	ListMyOvertimeRequests(ctx context.Context, caller user.AuthenticatedCaller) ([]OvertimeRequestResponse, error)
}
