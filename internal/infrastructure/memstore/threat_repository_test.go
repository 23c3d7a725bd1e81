package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

// stubClock makes timestamps strictly increasing and deterministic for
// ordering assertions. Restores the real clock on cleanup.
func stubClock(t *testing.T) {
	t.Helper()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	t.Cleanup(func() {
		now = func() time.Time { return time.Now().UTC() }
	})
}

func seedThreat(t *testing.T, repo *ThreatRepository, threat *domain.Threat) *domain.Threat {
	t.Helper()
	if err := repo.Create(context.Background(), threat); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return threat
}

func TestThreatRepository_List_FilterAndOrder(t *testing.T) {
	stubClock(t)
	repo := NewThreatRepository()
	ctx := context.Background()

	first := seedThreat(t, repo, &domain.Threat{UserID: "u1", Type: domain.ThreatLogging, Status: domain.StatusPending})
	second := seedThreat(t, repo, &domain.Threat{UserID: "u2", Type: domain.ThreatPollution, Status: domain.StatusPending})
	third := seedThreat(t, repo, &domain.Threat{UserID: "u1", Type: domain.ThreatLogging, Status: domain.StatusVerified})

	all, err := repo.List(ctx, ports.ThreatFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 threats, got %d", len(all))
	}
	if all[0].ID != third.ID || all[2].ID != first.ID {
		t.Fatalf("expected newest-first ordering")
	}

	logging, err := repo.List(ctx, ports.ThreatFilter{Type: domain.ThreatLogging, UserID: "u1"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(logging) != 2 {
		t.Fatalf("expected 2 logging threats for u1, got %d", len(logging))
	}

	pending, err := repo.List(ctx, ports.ThreatFilter{Status: domain.StatusPending})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending threats, got %d", len(pending))
	}
	if pending[0].ID != second.ID || pending[1].ID != first.ID {
		t.Fatalf("expected the pending threats newest-first")
	}
}

func TestThreatRepository_ListInRadius(t *testing.T) {
	repo := NewThreatRepository()
	ctx := context.Background()

	// Center in the Panama Bay mangroves. 0.05 degrees of latitude is about
	// 5.6 km; 0.2 degrees is about 22 km.
	center := domain.Coordinates{Lat: 9.0, Lng: -79.5}
	near := seedThreat(t, repo, &domain.Threat{Title: "near", Location: domain.Coordinates{Lat: 9.05, Lng: -79.5}})
	far := seedThreat(t, repo, &domain.Threat{Title: "far", Location: domain.Coordinates{Lat: 9.2, Lng: -79.5}})

	within, err := repo.ListInRadius(ctx, center.Lat, center.Lng, 10)
	if err != nil {
		t.Fatalf("ListInRadius returned error: %v", err)
	}
	if len(within) != 1 || within[0].ID != near.ID {
		t.Fatalf("expected only the near threat within 10km, got %d results", len(within))
	}

	wide, err := repo.ListInRadius(ctx, center.Lat, center.Lng, 30)
	if err != nil {
		t.Fatalf("ListInRadius returned error: %v", err)
	}
	if len(wide) != 2 {
		t.Fatalf("expected both threats within 30km, got %d", len(wide))
	}
	found := false
	for _, th := range wide {
		if th.ID == far.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the far threat inside the 30km radius")
	}
}

func TestThreatRepository_Update_MergePatch(t *testing.T) {
	repo := NewThreatRepository()
	ctx := context.Background()

	threat := seedThreat(t, repo, &domain.Threat{
		Title:       "Illegal logging near the estuary",
		Description: "Chainsaws heard at dawn",
		Priority:    domain.PriorityMedium,
		Status:      domain.StatusPending,
	})

	title := "Confirmed logging site"
	conf := 42.5
	updated, err := repo.Update(ctx, threat.ID, ports.ThreatPatch{Title: &title, AIConfidence: &conf})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != title || updated.AIConfidence != conf {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Description != threat.Description || updated.Priority != threat.Priority {
		t.Fatalf("absent fields must stay untouched: %+v", updated)
	}
}

func TestThreatRepository_UpdateStatus_CAS(t *testing.T) {
	repo := NewThreatRepository()
	ctx := context.Background()

	threat := seedThreat(t, repo, &domain.Threat{Status: domain.StatusPending})

	at := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	verified, err := repo.UpdateStatus(ctx, threat.ID, domain.StatusPending, domain.StatusVerified, "authority-1", at)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if verified.Status != domain.StatusVerified || verified.VerifiedBy != "authority-1" {
		t.Fatalf("unexpected verified threat: %+v", verified)
	}
	if verified.VerifiedAt == nil || !verified.VerifiedAt.Equal(at) {
		t.Fatalf("expected VerifiedAt %v, got %v", at, verified.VerifiedAt)
	}

	// A second transition still expecting pending must observe the conflict.
	if _, err := repo.UpdateStatus(ctx, threat.ID, domain.StatusPending, domain.StatusVerified, "authority-2", at); !errors.Is(err, domain.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}

	if _, err := repo.UpdateStatus(ctx, "missing", domain.StatusPending, domain.StatusVerified, "", at); !errors.Is(err, domain.ErrThreatNotFound) {
		t.Fatalf("expected ErrThreatNotFound, got %v", err)
	}
}
