package ports

import (
	"context"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// ListForUser returns the user's notifications, newest-first. When
	// unreadOnly is set, read notifications are excluded.
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error)
	// MarkRead acknowledges a notification. Returns
	// domain.ErrNotificationNotFound when the id is absent.
	MarkRead(ctx context.Context, id string) error
}
