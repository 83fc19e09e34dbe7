package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/avopro-hr/hr-backend-go/internal/domain/leave"
	"github.com/avopro-hr/hr-backend-go/internal/domain/request"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	DecideRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetDocument(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.CreateLeaveRequest(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// DecideRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) DecideRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	var req request.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	decided, err := l.leaveService.DecideLeaveRequest(r.Context(), caller, id, req.Decision())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request decided", "leave_request_id", id, "status", decided.Status, "decided_by", caller.AccountID)
	response.SuccessWithMessage(w, "Leave request updated successfully", decided)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	items, err := l.leaveService.ListMyLeaveRequests(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, items, &response.Meta{TotalItems: int64(len(items))})
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	item, err := l.leaveService.GetLeaveRequest(r.Context(), caller, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, item)
}

// GetDocument streams the approval PDF of an approved request.
func (l *LeaveHandlerImpl) GetDocument(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", leave.ErrLeaveRequestNotFound)
	if !ok {
		return
	}

	content, err := l.leaveService.GetApprovalDocument(r.Context(), caller, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="leave-approval-`+id+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		slog.Warn("failed to write approval document", "leave_request_id", id, "error", err)
	}
}
