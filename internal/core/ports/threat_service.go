package ports

import (
	"context"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
)

// CreateThreatInput carries all data needed to submit a new threat report.
type CreateThreatInput struct {
	UserID      string
	Type        domain.ThreatType
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Priority    domain.ThreatPriority
	Sector      string
	Photos      []string
	// IdempotencyKey deduplicates retried submissions when non-empty.
	IdempotencyKey string
}

// UpdateThreatInput is the merge-patch accepted by the review endpoint.
// Nil fields are left untouched.
type UpdateThreatInput struct {
	Status      *domain.ThreatStatus
	Priority    *domain.ThreatPriority
	Title       *string
	Description *string
	Sector      *string
	// ReviewerID identifies the authority applying a status change.
	ReviewerID string
}

// ThreatService defines use-case operations for threat reports.
type ThreatService interface {
	Create(ctx context.Context, input CreateThreatInput) (*domain.Threat, error)
	Get(ctx context.Context, id string) (*domain.Threat, error)
	List(ctx context.Context, filter ThreatFilter) ([]*domain.Threat, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Threat, error)
	Update(ctx context.Context, id string, input UpdateThreatInput) (*domain.Threat, error)
}
