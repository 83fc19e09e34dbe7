package notification

import "time"

// CreateNotificationRequest is what producers hand to the service.
type CreateNotificationRequest struct {
	RecipientID string
	Message     string
	Link        string
	CreatedBy   string
}

func (r CreateNotificationRequest) Validate() error {
	if r.RecipientID == "" {
		return ErrRecipientRequired
	}
	if r.Message == "" {
		return ErrMessageRequired
	}
	return nil
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID          string  `json:"id"`
	Message     string  `json:"message"`
	Link        *string `json:"link"`
	IsRead      bool    `json:"is_read"`
	CreatedBy   *string `json:"created_by"`
	CreatorName *string `json:"creator_name,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

func NewNotificationResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Message:     n.Message,
		Link:        n.Link,
		IsRead:      n.IsRead,
		CreatedBy:   n.CreatedBy,
		CreatorName: n.CreatorName,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
}

// MarkReadResponse reports how many notifications were flipped to read.
type MarkReadResponse struct {
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

// StreamTokenResponse carries a short-lived token for the event stream,
// which cannot send an Authorization header.
type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
