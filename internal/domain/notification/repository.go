package notification

import "context"

// Repository defines the interface for notification data access
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	// ListByRecipient returns the recipient's notifications, newest first.
	ListByRecipient(ctx context.Context, recipientID string) ([]Notification, error)
	// MarkAllAsRead flips every unread notification of the recipient and
	// returns how many changed.
	MarkAllAsRead(ctx context.Context, recipientID string) (int64, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
}
