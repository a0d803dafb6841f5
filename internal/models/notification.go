package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// NotificationType identifies the event a notification was raised for
type NotificationType string

const (
	NotificationMentorshipRequested NotificationType = "mentorship_requested"
	NotificationMentorshipAccepted  NotificationType = "mentorship_accepted"
	NotificationMentorshipRejected  NotificationType = "mentorship_rejected"
	NotificationMentorshipCompleted NotificationType = "mentorship_completed"
	NotificationSessionScheduled    NotificationType = "session_scheduled"
)

// Notification is a fire-and-forget record addressed to one user
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Link      string           `json:"link"`
	RelatedID string           `json:"relatedId"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NotificationsResponse is the response for listing a user's notifications
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
}

// ScanNotification scans a single PostgreSQL row into a Notification.
// Expected columns: id, user_id, type, title, message, link, related_id, is_read, created_at
func ScanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.Link,
		&n.RelatedID,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
