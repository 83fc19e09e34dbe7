package postgresql

import (
	"context"
	"fmt"

	"github.com/avopro-hr/hr-backend-go/internal/domain/notification"
	"github.com/avopro-hr/hr-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create inserts n and fills its ID and CreatedAt.
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate notification id: %w", err)
		}
		n.ID = id.String()
	}

	query := `
		INSERT INTO notifications (id, recipient_id, message, link, is_read, created_by)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, n.ID, n.RecipientID, n.Message, n.Link, n.CreatedBy).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	n.IsRead = false

	return nil
}

// ListByRecipient returns notifications for a recipient, newest first
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT n.id, n.recipient_id, n.message, n.link, n.is_read, n.created_by, n.created_at, u.name
		FROM notifications n
		LEFT JOIN users u ON u.id = n.created_by
		WHERE n.recipient_id = $1
		ORDER BY n.created_at DESC, n.id DESC
	`

	rows, err := q.Query(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.Message,
			&n.Link,
			&n.IsRead,
			&n.CreatedBy,
			&n.CreatedAt,
			&n.CreatorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkAllAsRead marks every unread notification of the recipient as read
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`, recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountUnread returns the count of unread notifications
func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`, recipientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}
