package domain

import "time"

// NotificationType classifies why a notification was sent.
type NotificationType string

const (
	NotificationAlert          NotificationType = "alert"
	NotificationThreatVerified NotificationType = "threat_verified"
	NotificationAchievement    NotificationType = "achievement"
	NotificationSystem         NotificationType = "system"
)

// Notification is addressed to exactly one user. The Data payload is opaque
// to the dispatcher; consumers interpret it per Type.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `json:"data,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
