package ports

import (
	"context"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
)

// NotificationInput is the DTO handed to the dispatcher.
type NotificationInput struct {
	UserID  string
	Type    domain.NotificationType
	Title   string
	Message string
	Data    map[string]any
}

// NotificationService creates notification records and handles read state.
type NotificationService interface {
	// Dispatch persists an unread notification and attempts best-effort live
	// delivery. A missing live session is not an error.
	Dispatch(ctx context.Context, input NotificationInput) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// NotificationSink accepts notifications fire-and-forget. Producers use it so
// dispatch can never block or fail the entity mutation that triggered it; the
// production implementation is the sharded queue dispatcher.
type NotificationSink interface {
	Push(input NotificationInput)
}
