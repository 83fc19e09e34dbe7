package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/overtime"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
)

type OvertimeHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	DecideRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{overtimeService: overtimeService}
}

func (h *overtimeHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req overtime.CreateOvertimeRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateOvertimeRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.overtimeService.CreateOvertimeRequest(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted successfully", created)
}

func (h *overtimeHandlerImpl) DecideRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", overtime.ErrOvertimeRequestNotFound)
	if !ok {
		return
	}

	var req request.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideOvertimeRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	decided, err := h.overtimeService.DecideOvertimeRequest(r.Context(), caller, id, req.Decision())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request updated successfully", decided)
}

func (h *overtimeHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	items, err := h.overtimeService.ListMyOvertimeRequests(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, items, &response.Meta{TotalItems: int64(len(items))})
}
