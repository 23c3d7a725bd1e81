package websocket

import "github.com/mangrovewatch/guardian-system/internal/core/domain"

// DeliverNotification wraps a notification in the push frame browsers expect
// and delivers it to the user's live session, if any. Satisfies the
// notification service's LiveDeliverer.
func (r *Registry) DeliverNotification(userID string, n *domain.Notification) bool {
	return r.Deliver(userID, Message{Type: MessageTypeNotification, Data: n})
}
