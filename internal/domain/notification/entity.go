package notification

import (
	"time"
)

// Notification is an append-only message addressed to one account.
type Notification struct {
	ID          string
	RecipientID string
	Message     string
	Link        *string
	IsRead      bool
	CreatedBy   *string
	CreatedAt   time.Time

	// Join
	CreatorName *string
}

// Links into the frontend carried by notifications.
const (
	LinkManageRequests = "/admin/hr/manage-requests"
	LinkManageUsers    = "/admin/hr/manage-users"
	LinkOvertime       = "/overtime"
)

// LeaveLink points at the detail page of one leave request.
func LeaveLink(leaveID string) string {
	return "/leave/" + leaveID
}
