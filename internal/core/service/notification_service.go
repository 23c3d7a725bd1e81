package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mangrovewatch/guardian-system/internal/api/metrics"
	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

// LiveDeliverer abstracts the live session registry. Delivery is best-effort;
// false means nobody was there to notify.
type LiveDeliverer interface {
	DeliverNotification(userID string, n *domain.Notification) bool
}

// NotificationService persists notifications and pushes them to open live
// sessions. An undeliverable notification stays stored for later retrieval;
// there is no retry.
type NotificationService struct {
	notifications ports.NotificationRepository
	live          LiveDeliverer
	log           zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, live LiveDeliverer, log zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, live: live, log: log}
}

// Dispatch creates the unread record and attempts immediate live delivery.
func (s *NotificationService) Dispatch(ctx context.Context, input ports.NotificationInput) (*domain.Notification, error) {
	n := &domain.Notification{
		UserID:  input.UserID,
		Type:    input.Type,
		Title:   input.Title,
		Message: input.Message,
		Data:    input.Data,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}

	result := "stored"
	if s.live != nil && s.live.DeliverNotification(n.UserID, n) {
		result = "delivered"
	} else {
		s.log.Debug().Str("user_id", n.UserID).Str("type", string(n.Type)).Msg("no live session, notification stored only")
	}

	metrics.NotificationsDispatchedTotal.WithLabelValues(string(n.Type), result).Inc()
	return n, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	return s.notifications.ListForUser(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}
