package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
	"github.com/mangrovewatch/guardian-system/internal/infrastructure/memstore"
)

func newUserEnv() (*memstore.Store, *UserService) {
	store := memstore.New()
	return store, NewUserService(store.Users, store.Threats, store.Achievements, zerolog.Nop())
}

func TestUserService_Stats(t *testing.T) {
	store, svc := newUserEnv()
	ctx := context.Background()
	owner := seedUser(t, store, "alice", domain.RoleGuardian)

	if _, err := store.Users.ApplyStats(ctx, owner.ID, ports.StatsDelta{ReportsSubmitted: 4, VerifiedReports: 3, Points: 150}); err != nil {
		t.Fatalf("ApplyStats returned error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := store.Threats.Create(ctx, &domain.Threat{UserID: owner.ID, Status: domain.StatusPending}); err != nil {
			t.Fatalf("Create threat returned error: %v", err)
		}
	}
	if _, err := store.Achievements.Award(ctx, owner.ID, "first-responder"); err != nil {
		t.Fatalf("Award returned error: %v", err)
	}

	stats, err := svc.Stats(ctx, owner.ID)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Points != 150 || stats.Level != 1 {
		t.Fatalf("unexpected points/level: %+v", stats)
	}
	if stats.Accuracy != 75 {
		t.Fatalf("expected accuracy 75, got %v", stats.Accuracy)
	}
	if stats.TotalThreats != 2 {
		t.Fatalf("expected 2 threats, got %d", stats.TotalThreats)
	}
	if len(stats.RecentAchievements) != 1 {
		t.Fatalf("expected 1 recent achievement, got %d", len(stats.RecentAchievements))
	}
	if stats.RecentAchievements[0].Achievement == nil || stats.RecentAchievements[0].Achievement.Name != "First Responder" {
		t.Fatalf("expected joined catalog entry, got %+v", stats.RecentAchievements[0])
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	store, svc := newUserEnv()
	ctx := context.Background()
	owner := seedUser(t, store, "alice", domain.RoleGuardian)

	location := "Sundarbans, Bangladesh"
	updated, err := svc.UpdateProfile(ctx, owner.ID, ports.UserPatch{Location: &location})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Location != location {
		t.Fatalf("expected location applied, got %q", updated.Location)
	}
	if updated.ProfilePicture != "" {
		t.Fatalf("absent fields must stay untouched")
	}
}

func TestUserService_Leaderboard_DefaultLimit(t *testing.T) {
	store, svc := newUserEnv()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		u := seedUser(t, store, "user"+string(rune('a'+i)), domain.RoleGuardian)
		if _, err := store.Users.ApplyStats(ctx, u.ID, ports.StatsDelta{Points: i * 10}); err != nil {
			t.Fatalf("ApplyStats returned error: %v", err)
		}
	}

	top, err := svc.Leaderboard(ctx, 0)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(top) != 10 {
		t.Fatalf("expected default limit of 10, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Points > top[i-1].Points {
			t.Fatalf("leaderboard must be ordered by points descending")
		}
	}
}

func TestUserService_Dashboard(t *testing.T) {
	store, svc := newUserEnv()
	ctx := context.Background()

	seedUser(t, store, "alice", domain.RoleGuardian)
	seedUser(t, store, "bob", domain.RoleGuardian)
	seedUser(t, store, "ranger", domain.RoleAuthority)

	for _, status := range []domain.ThreatStatus{domain.StatusPending, domain.StatusResolved, domain.StatusResolved, domain.StatusResolved} {
		if err := store.Threats.Create(ctx, &domain.Threat{Status: status}); err != nil {
			t.Fatalf("Create threat returned error: %v", err)
		}
	}

	stats, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if stats.ActiveGuardians != 2 {
		t.Fatalf("expected 2 guardians, got %d", stats.ActiveGuardians)
	}
	if stats.ReportsToday != 4 {
		t.Fatalf("expected all fresh threats counted today, got %d", stats.ReportsToday)
	}
	if stats.ProtectedArea != 1.5 {
		t.Fatalf("expected 1.5 km² protected, got %v", stats.ProtectedArea)
	}
}
