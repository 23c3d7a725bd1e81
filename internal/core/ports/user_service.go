package ports

import (
	"context"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
)

// EarnedAchievement pairs a join record with its catalog entry.
type EarnedAchievement struct {
	domain.UserAchievement
	Achievement *domain.Achievement `json:"achievement"`
}

// UserStats is the aggregate progress view for a user.
type UserStats struct {
	Points             int                 `json:"points"`
	Level              int                 `json:"level"`
	Accuracy           float64             `json:"accuracy"`
	ReportsSubmitted   int                 `json:"reportsSubmitted"`
	VerifiedReports    int                 `json:"verifiedReports"`
	TotalThreats       int                 `json:"totalThreats"`
	RecentAchievements []EarnedAchievement `json:"recentAchievements"`
}

// DashboardStats is the community-wide counter view.
type DashboardStats struct {
	ReportsToday    int     `json:"reportsToday"`
	ActiveGuardians int     `json:"activeGuardians"`
	ProtectedArea   float64 `json:"protectedArea"`
}

// UserService defines use cases over users and their progress. All methods
// except UpdateProfile are read-only.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Stats(ctx context.Context, id string) (*UserStats, error)
	Achievements(ctx context.Context, id string) ([]EarnedAchievement, error)
	Leaderboard(ctx context.Context, limit int) ([]*domain.User, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
}
