package ports

import (
	"context"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
)

// AchievementRepository exposes the static catalog and the per-user join
// records.
type AchievementRepository interface {
	List(ctx context.Context) ([]*domain.Achievement, error)
	FindByID(ctx context.Context, id string) (*domain.Achievement, error)
	// ListForUser returns the user's earned achievements, newest-first.
	ListForUser(ctx context.Context, userID string) ([]*domain.UserAchievement, error)
	// Award records that the user earned the achievement. Awarding the same
	// achievement twice is the caller's bug; records are immutable.
	Award(ctx context.Context, userID, achievementID string) (*domain.UserAchievement, error)
}
