package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

// protectedAreaPerResolvedKm2 is the rough area estimate credited per
// resolved threat, carried over from the original dashboard.
const protectedAreaPerResolvedKm2 = 0.5

// UserService serves the read side: profiles, progress stats, leaderboard,
// and community dashboard counters.
type UserService struct {
	users        ports.UserRepository
	threats      ports.ThreatRepository
	achievements ports.AchievementRepository
	log          zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	threats ports.ThreatRepository,
	achievements ports.AchievementRepository,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, threats: threats, achievements: achievements, log: log}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile applies the editable profile fields. Progress counters and
// credentials are not reachable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	return s.users.Update(ctx, id, patch)
}

// Stats aggregates the user's progress plus their three most recent
// achievements.
func (s *UserService) Stats(ctx context.Context, id string) (*ports.UserStats, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	threats, err := s.threats.List(ctx, ports.ThreatFilter{UserID: id})
	if err != nil {
		return nil, err
	}

	earned, err := s.Achievements(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(earned) > 3 {
		earned = earned[:3]
	}

	return &ports.UserStats{
		Points:             user.Points,
		Level:              user.Level,
		Accuracy:           user.Accuracy,
		ReportsSubmitted:   user.ReportsSubmitted,
		VerifiedReports:    user.VerifiedReports,
		TotalThreats:       len(threats),
		RecentAchievements: earned,
	}, nil
}

// Achievements joins the user's earned records with their catalog entries.
func (s *UserService) Achievements(ctx context.Context, id string) ([]ports.EarnedAchievement, error) {
	earned, err := s.achievements.ListForUser(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]ports.EarnedAchievement, 0, len(earned))
	for _, ua := range earned {
		entry := ports.EarnedAchievement{UserAchievement: *ua}
		if a, err := s.achievements.FindByID(ctx, ua.AchievementID); err == nil {
			entry.Achievement = a
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.users.ListTop(ctx, limit)
}

// Dashboard computes the community-wide counters shown on the landing page.
func (s *UserService) Dashboard(ctx context.Context) (*ports.DashboardStats, error) {
	threats, err := s.threats.List(ctx, ports.ThreatFilter{})
	if err != nil {
		return nil, err
	}

	guardians, err := s.users.ListByRole(ctx, domain.RoleGuardian)
	if err != nil {
		return nil, err
	}

	nowUTC := time.Now().UTC()
	midnight := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)

	reportsToday := 0
	resolved := 0
	for _, t := range threats {
		if !t.CreatedAt.Before(midnight) {
			reportsToday++
		}
		if t.Status == domain.StatusResolved {
			resolved++
		}
	}

	return &ports.DashboardStats{
		ReportsToday:    reportsToday,
		ActiveGuardians: len(guardians),
		ProtectedArea:   round2(float64(resolved) * protectedAreaPerResolvedKm2),
	}, nil
}
