package ports

import (
	"context"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
)

// UserPatch is a merge-patch: only non-nil fields are applied.
type UserPatch struct {
	Location       *string
	ProfilePicture *string
}

// StatsDelta carries counter adjustments applied atomically to a user.
// The store recomputes accuracy and level after applying the delta.
type StatsDelta struct {
	ReportsSubmitted int
	VerifiedReports  int
	Points           int
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username or email is already taken.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	// ApplyStats adjusts the user's counters in one atomic step and refreshes
	// the derived accuracy and level fields.
	ApplyStats(ctx context.Context, id string, delta StatsDelta) (*domain.User, error)
	// ListTop returns up to limit users ordered by points, highest first.
	ListTop(ctx context.Context, limit int) ([]*domain.User, error)
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
}
