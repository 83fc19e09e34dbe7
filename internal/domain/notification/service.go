package notification

import (
	"context"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/sse"
)

// Service defines the interface for notification operations
type Service interface {
	// Notify appends one notification and pushes it to live subscribers.
	Notify(ctx context.Context, req CreateNotificationRequest) error
	// NotifyApprovers fans the message out to every active ADMIN and HR
	// account. Each insertion is independent; failures are logged and the
	// remaining recipients are still notified.
	NotifyApprovers(ctx context.Context, createdBy, message, link string)

	List(ctx context.Context, caller user.AuthenticatedCaller) ([]NotificationResponse, error)
	MarkAllRead(ctx context.Context, caller user.AuthenticatedCaller) (MarkReadResponse, error)
	UnreadCount(ctx context.Context, caller user.AuthenticatedCaller) (UnreadCountResponse, error)

	// Subscribe registers a live listener for the account's new notifications.
	Subscribe(ctx context.Context, accountID string) (<-chan sse.Event, func())
}
