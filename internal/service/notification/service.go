package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avopro-hr/hr-backend-go/internal/domain/notification"
	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/sse"
)

// EventName is the SSE event carrying a new notification.
const EventName = "notification"

type service struct {
	repo  notification.Repository
	users user.Repository
	hub   *sse.Hub
}

// NewNotificationService creates a notification service. Each stored
// notification is also pushed to the recipient's live streams on hub.
func NewNotificationService(repo notification.Repository, users user.Repository, hub *sse.Hub) notification.Service {
	return &service{
		repo:  repo,
		users: users,
		hub:   hub,
	}
}

func (s *service) Notify(ctx context.Context, req notification.CreateNotificationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	n := &notification.Notification{
		RecipientID: req.RecipientID,
		Message:     req.Message,
	}
	if req.Link != "" {
		link := req.Link
		n.Link = &link
	}
	if req.CreatedBy != "" {
		createdBy := req.CreatedBy
		n.CreatedBy = &createdBy
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.hub.Publish(sse.Event{
		AccountID: n.RecipientID,
		Name:      EventName,
		Data:      notification.NewNotificationResponse(*n),
	})
	return nil
}

func (s *service) NotifyApprovers(ctx context.Context, createdBy, message, link string) {
	approvers, err := s.users.ListActiveApprovers(ctx)
	if err != nil {
		slog.Error("failed to list approvers for notification", "error", err)
		return
	}

	for _, approver := range approvers {
		err := s.Notify(ctx, notification.CreateNotificationRequest{
			RecipientID: approver.ID,
			Message:     message,
			Link:        link,
			CreatedBy:   createdBy,
		})
		if err != nil {
			slog.Error("failed to notify approver", "recipient_id", approver.ID, "error", err)
		}
	}
}

func (s *service) List(ctx context.Context, caller user.AuthenticatedCaller) ([]notification.NotificationResponse, error) {
	items, err := s.repo.ListByRecipient(ctx, caller.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, notification.NewNotificationResponse(n))
	}
	return responses, nil
}

func (s *service) MarkAllRead(ctx context.Context, caller user.AuthenticatedCaller) (notification.MarkReadResponse, error) {
	count, err := s.repo.MarkAllAsRead(ctx, caller.AccountID)
	if err != nil {
		return notification.MarkReadResponse{}, fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return notification.MarkReadResponse{
		Count:   count,
		Message: fmt.Sprintf("%d notifications marked as read.", count),
	}, nil
}

func (s *service) UnreadCount(ctx context.Context, caller user.AuthenticatedCaller) (notification.UnreadCountResponse, error) {
	count, err := s.repo.CountUnread(ctx, caller.AccountID)
	if err != nil {
		return notification.UnreadCountResponse{}, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return notification.UnreadCountResponse{Count: count}, nil
}

func (s *service) Subscribe(ctx context.Context, accountID string) (<-chan sse.Event, func()) {
	return s.hub.Subscribe(accountID)
}
