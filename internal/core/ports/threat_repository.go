package ports

import (
	"context"
	"time"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
)

// ThreatFilter narrows a threat listing. Zero values mean "no filter".
type ThreatFilter struct {
	Status domain.ThreatStatus
	Type   domain.ThreatType
	UserID string
}

// ThreatPatch is a merge-patch: only non-nil fields are applied. Status is
// deliberately absent; transitions go through UpdateStatus so the
// compare-and-set guard cannot be bypassed.
type ThreatPatch struct {
	Title        *string
	Description  *string
	Priority     *domain.ThreatPriority
	Sector       *string
	AIConfidence *float64
}

// ThreatRepository defines persistence operations for threat reports.
type ThreatRepository interface {
	Create(ctx context.Context, t *domain.Threat) error
	FindByID(ctx context.Context, id string) (*domain.Threat, error)
	// List returns threats matching filter, ordered newest-first by creation
	// time.
	List(ctx context.Context, filter ThreatFilter) ([]*domain.Threat, error)
	// ListInRadius returns threats within radiusKm of the query point by
	// great-circle distance.
	ListInRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Threat, error)
	Update(ctx context.Context, id string, patch ThreatPatch) (*domain.Threat, error)
	// UpdateStatus transitions a threat from one status to another under the
	// store's write lock. Returns domain.ErrStatusConflict when the current
	// status no longer matches from, which guards concurrent verifications
	// against double-awarding points.
	UpdateStatus(ctx context.Context, id string, from, to domain.ThreatStatus, verifiedBy string, at time.Time) (*domain.Threat, error)
}
