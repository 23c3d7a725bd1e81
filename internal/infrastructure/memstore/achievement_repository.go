package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
)

// defaultCatalog is the static achievement catalog loaded at construction.
var defaultCatalog = []*domain.Achievement{
	{
		ID:          "first-responder",
		Name:        "First Responder",
		Description: "Submit your first threat report",
		Icon:        "fas fa-flag",
		Points:      100,
		Criteria:    domain.AchievementCriteria{ReportsSubmitted: 1},
	},
	{
		ID:          "eagle-eye",
		Name:        "Eagle Eye",
		Description: "Report 5 verified threats",
		Icon:        "fas fa-eye",
		Points:      250,
		Criteria:    domain.AchievementCriteria{VerifiedReports: 5},
	},
	{
		ID:          "mangrove-hero",
		Name:        "Mangrove Hero",
		Description: "Submit 50 verified reports",
		Icon:        "fas fa-shield-alt",
		Points:      1000,
		Criteria:    domain.AchievementCriteria{VerifiedReports: 50},
	},
	{
		ID:          "community-builder",
		Name:        "Community Builder",
		Description: "Maintain 90% accuracy rate",
		Icon:        "fas fa-users",
		Points:      500,
		Criteria:    domain.AchievementCriteria{Accuracy: 90},
	},
	{
		ID:          "forest-guardian",
		Name:        "Forest Guardian",
		Description: "Report illegal logging activities",
		Icon:        "fas fa-leaf",
		Points:      300,
		Criteria:    domain.AchievementCriteria{ThreatType: domain.ThreatLogging, Count: 10},
	},
}

type AchievementRepository struct {
	mu      sync.RWMutex
	catalog map[string]*domain.Achievement
	earned  map[string]*domain.UserAchievement
}

func NewAchievementRepository() *AchievementRepository {
	r := &AchievementRepository{
		catalog: make(map[string]*domain.Achievement),
		earned:  make(map[string]*domain.UserAchievement),
	}
	for _, a := range defaultCatalog {
		clone := *a
		r.catalog[a.ID] = &clone
	}
	return r
}

func (r *AchievementRepository) List(_ context.Context) ([]*domain.Achievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Achievement, 0, len(r.catalog))
	for _, a := range r.catalog {
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AchievementRepository) FindByID(_ context.Context, id string) (*domain.Achievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.catalog[id]
	if !ok {
		return nil, domain.ErrAchievementNotFound
	}
	clone := *a
	return &clone, nil
}

// ListForUser returns the user's earned achievements, newest-first.
func (r *AchievementRepository) ListForUser(_ context.Context, userID string) ([]*domain.UserAchievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.UserAchievement, 0)
	for _, ua := range r.earned {
		if ua.UserID == userID {
			clone := *ua
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EarnedAt.After(out[j].EarnedAt) })
	return out, nil
}

func (r *AchievementRepository) Award(_ context.Context, userID, achievementID string) (*domain.UserAchievement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.catalog[achievementID]; !ok {
		return nil, domain.ErrAchievementNotFound
	}

	ua := &domain.UserAchievement{
		ID:            uuid.NewString(),
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      now(),
	}
	r.earned[ua.ID] = ua

	clone := *ua
	return &clone, nil
}
