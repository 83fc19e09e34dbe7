package http

import (
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/dashboard"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetSummary returns the role-specific dashboard counters
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetSummary handles GET /dashboard/summary
func (h *dashboardHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetSummary(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
