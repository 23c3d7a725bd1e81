package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

type ThreatRepository struct {
	mu      sync.RWMutex
	threats map[string]*domain.Threat
}

func NewThreatRepository() *ThreatRepository {
	return &ThreatRepository{threats: make(map[string]*domain.Threat)}
}

func (r *ThreatRepository) Create(_ context.Context, t *domain.Threat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *t
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now()
	}
	stored.Photos = append([]string(nil), t.Photos...)

	r.threats[stored.ID] = &stored
	*t = stored
	t.Photos = append([]string(nil), stored.Photos...)
	return nil
}

func (r *ThreatRepository) FindByID(_ context.Context, id string) (*domain.Threat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.threats[id]
	if !ok {
		return nil, domain.ErrThreatNotFound
	}
	return cloneThreat(t), nil
}

// List returns threats matching filter, newest-first.
func (r *ThreatRepository) List(_ context.Context, filter ports.ThreatFilter) ([]*domain.Threat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Threat, 0)
	for _, t := range r.threats {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		out = append(out, cloneThreat(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListInRadius returns threats within radiusKm of the query point.
func (r *ThreatRepository) ListInRadius(_ context.Context, lat, lng, radiusKm float64) ([]*domain.Threat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Threat, 0)
	for _, t := range r.threats {
		if Haversine(lat, lng, t.Location.Lat, t.Location.Lng) <= radiusKm {
			out = append(out, cloneThreat(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update applies a merge-patch to everything except status.
func (r *ThreatRepository) Update(_ context.Context, id string, patch ports.ThreatPatch) (*domain.Threat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.threats[id]
	if !ok {
		return nil, domain.ErrThreatNotFound
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Sector != nil {
		t.Sector = *patch.Sector
	}
	if patch.AIConfidence != nil {
		t.AIConfidence = *patch.AIConfidence
	}

	return cloneThreat(t), nil
}

// UpdateStatus performs a compare-and-set transition under the write lock.
// The from status is re-checked so two concurrent verifications cannot both
// observe pending and double-award points.
func (r *ThreatRepository) UpdateStatus(_ context.Context, id string, from, to domain.ThreatStatus, verifiedBy string, at time.Time) (*domain.Threat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.threats[id]
	if !ok {
		return nil, domain.ErrThreatNotFound
	}
	if t.Status != from {
		return nil, domain.ErrStatusConflict
	}

	t.Status = to
	if to == domain.StatusVerified {
		t.VerifiedBy = verifiedBy
		ts := at
		t.VerifiedAt = &ts
	}

	return cloneThreat(t), nil
}

func cloneThreat(t *domain.Threat) *domain.Threat {
	clone := *t
	clone.Photos = append([]string(nil), t.Photos...)
	if t.VerifiedAt != nil {
		ts := *t.VerifiedAt
		clone.VerifiedAt = &ts
	}
	return &clone
}
