package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
)

type NotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*domain.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{notifications: make(map[string]*domain.Notification)}
}

func (r *NotificationRepository) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *n
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Read = false
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now()
	}

	r.notifications[stored.ID] = &stored
	*n = stored
	return nil
}

// ListForUser returns the user's notifications, newest-first.
func (r *NotificationRepository) ListForUser(_ context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Notification, 0)
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		clone := *n
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}
