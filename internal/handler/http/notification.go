package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/auth"
	"github.com/avopro-hr/hr-backend-go/internal/domain/notification"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/jwt"
)

const streamKeepalive = 30 * time.Second

// NotificationHandler defines the notification handler interface
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)

	// SSE
	GetStreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
	jwtService   jwt.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService notification.Service, jwtService jwt.Service) NotificationHandler {
	return &notificationHandlerImpl{
		notifService: notifService,
		jwtService:   jwtService,
	}
}

// List returns the caller's notifications, newest first
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	result, err := h.notifService.List(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

// UnreadCount returns the count of unread notifications
func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	count, err := h.notifService.UnreadCount(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, count)
}

// MarkAllAsRead marks all notifications as read
func (h *notificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	result, err := h.notifService.MarkAllRead(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// GetStreamToken generates a short-lived token for SSE connections
func (h *notificationHandlerImpl) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(caller.AccountID)
	if err != nil {
		slog.Error("failed to generate stream token", "error", err)
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, notification.StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles SSE connection for real-time notifications
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, so the token travels in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	accountID, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.notifService.Subscribe(r.Context(), accountID)
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("failed to encode stream event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
