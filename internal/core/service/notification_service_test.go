package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
	"github.com/mangrovewatch/guardian-system/internal/infrastructure/memstore"
)

// stubDeliverer fakes the live session registry.
type stubDeliverer struct {
	online    map[string]bool
	delivered []*domain.Notification
}

func (d *stubDeliverer) DeliverNotification(userID string, n *domain.Notification) bool {
	if !d.online[userID] {
		return false
	}
	d.delivered = append(d.delivered, n)
	return true
}

func TestNotificationService_Dispatch_Delivered(t *testing.T) {
	repo := memstore.NewNotificationRepository()
	live := &stubDeliverer{online: map[string]bool{"u1": true}}
	svc := NewNotificationService(repo, live, zerolog.Nop())

	n, err := svc.Dispatch(context.Background(), ports.NotificationInput{
		UserID:  "u1",
		Type:    domain.NotificationThreatVerified,
		Title:   "Report Verified!",
		Message: "Your logging report has been verified by authorities",
		Data:    map[string]any{"points": 50},
	})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if n.ID == "" {
		t.Fatalf("expected persisted notification id")
	}
	if n.Read {
		t.Fatalf("dispatched notifications must start unread")
	}
	if len(live.delivered) != 1 || live.delivered[0].ID != n.ID {
		t.Fatalf("expected live delivery of the stored record")
	}
}

func TestNotificationService_Dispatch_StoredWhenOffline(t *testing.T) {
	repo := memstore.NewNotificationRepository()
	live := &stubDeliverer{online: map[string]bool{}}
	svc := NewNotificationService(repo, live, zerolog.Nop())

	n, err := svc.Dispatch(context.Background(), ports.NotificationInput{
		UserID: "u1",
		Type:   domain.NotificationSystem,
		Title:  "Welcome",
	})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if len(live.delivered) != 0 {
		t.Fatalf("offline user must not receive live delivery")
	}

	stored, err := svc.ListForUser(context.Background(), "u1", true)
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != n.ID {
		t.Fatalf("notification must remain retrievable when undelivered")
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	repo := memstore.NewNotificationRepository()
	svc := NewNotificationService(repo, nil, zerolog.Nop())

	n, err := svc.Dispatch(context.Background(), ports.NotificationInput{UserID: "u1", Type: domain.NotificationAlert})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if err := svc.MarkRead(context.Background(), n.ID); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
	unread, err := svc.ListForUser(context.Background(), "u1", true)
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("expected no unread notifications, got %d", len(unread))
	}

	if err := svc.MarkRead(context.Background(), "missing"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}
