package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mangrovewatch/guardian-system/internal/api/metrics"
	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

// autoVerifyThreshold is the placeholder confidence above which a submission
// is verified without authority review. The confidence itself is a random
// number; there is no model behind it.
const autoVerifyThreshold = 70.0

// IdempotencyStore abstracts the optional Redis-backed submission dedup.
type IdempotencyStore interface {
	// Lookup returns the threat id previously stored under key, or "" when
	// the key is unknown.
	Lookup(ctx context.Context, key string) (string, error)
	Remember(ctx context.Context, key, threatID string) error
}

type ThreatService struct {
	threats     ports.ThreatRepository
	users       ports.UserRepository
	scoring     *ScoringService
	notifier    ports.NotificationSink
	idempotency IdempotencyStore // nil disables the dedup check
	log         zerolog.Logger

	// confidence produces the placeholder AI validation score in [0,100).
	// Overridden in tests for determinism.
	confidence func() float64
}

func NewThreatService(
	threats ports.ThreatRepository,
	users ports.UserRepository,
	scoring *ScoringService,
	notifier ports.NotificationSink,
	idempotency IdempotencyStore,
	log zerolog.Logger,
) *ThreatService {
	return &ThreatService{
		threats:     threats,
		users:       users,
		scoring:     scoring,
		notifier:    notifier,
		idempotency: idempotency,
		log:         log,
		confidence:  func() float64 { return rand.Float64() * 100 },
	}
}

// Create submits a new threat report: the record is stored as pending, the
// owner's submission counter is incremented, the placeholder confidence is
// recorded (auto-verifying above the threshold), and authorities are alerted
// for high-priority reports. Notification delivery never blocks the write.
func (s *ThreatService) Create(ctx context.Context, input ports.CreateThreatInput) (*domain.Threat, error) {
	if input.IdempotencyKey != "" && s.idempotency != nil {
		if id, err := s.idempotency.Lookup(ctx, input.IdempotencyKey); err != nil {
			s.log.Warn().Err(err).Msg("idempotency lookup failed, processing anyway")
		} else if id != "" {
			if existing, err := s.threats.FindByID(ctx, id); err == nil {
				s.log.Info().Str("idempotency_key", input.IdempotencyKey).Str("threat_id", id).Msg("idempotent replay")
				return existing, nil
			}
		}
	}

	owner, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("create threat: %w", err)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	threat := &domain.Threat{
		UserID:      owner.ID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Location:    domain.Coordinates{Lat: input.Latitude, Lng: input.Longitude},
		Photos:      input.Photos,
		Status:      domain.StatusPending,
		Priority:    priority,
		Sector:      input.Sector,
	}
	if err := s.threats.Create(ctx, threat); err != nil {
		return nil, fmt.Errorf("create threat: %w", err)
	}

	if _, err := s.scoring.OnReportSubmitted(ctx, owner.ID); err != nil {
		s.log.Error().Err(err).Str("user_id", owner.ID).Msg("failed to count submission")
	}

	conf := round2(s.confidence())
	threat, err = s.threats.Update(ctx, threat.ID, ports.ThreatPatch{AIConfidence: &conf})
	if err != nil {
		return nil, fmt.Errorf("create threat: record confidence: %w", err)
	}
	if conf > autoVerifyThreshold {
		if verified, err := s.transition(ctx, threat, domain.StatusVerified, ""); err != nil {
			s.log.Warn().Err(err).Str("threat_id", threat.ID).Msg("auto-verification failed")
		} else {
			threat = verified
		}
	}

	if threat.Priority == domain.PriorityHigh {
		s.alertAuthorities(ctx, threat)
	}

	if input.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, input.IdempotencyKey, threat.ID); err != nil {
			s.log.Warn().Err(err).Msg("failed to store idempotency key")
		}
	}

	metrics.ThreatsReportedTotal.WithLabelValues(string(threat.Type), string(threat.Priority)).Inc()
	s.log.Info().
		Str("threat_id", threat.ID).
		Str("user_id", owner.ID).
		Str("type", string(threat.Type)).
		Str("priority", string(threat.Priority)).
		Msg("threat reported")

	return threat, nil
}

func (s *ThreatService) Get(ctx context.Context, id string) (*domain.Threat, error) {
	return s.threats.FindByID(ctx, id)
}

func (s *ThreatService) List(ctx context.Context, filter ports.ThreatFilter) ([]*domain.Threat, error) {
	return s.threats.List(ctx, filter)
}

func (s *ThreatService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Threat, error) {
	return s.threats.ListInRadius(ctx, lat, lng, radiusKm)
}

// Update applies a merge-patch. A status change is validated against the
// transition table and applied with a compare-and-set; a repeated patch to
// the current status is an idempotent no-op, so re-verification can never
// double-award points.
func (s *ThreatService) Update(ctx context.Context, id string, input ports.UpdateThreatInput) (*domain.Threat, error) {
	threat, err := s.threats.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil && *input.Status != threat.Status {
		next := *input.Status
		if !threat.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, threat.Status, next)
		}
		threat, err = s.transition(ctx, threat, next, input.ReviewerID)
		if err != nil {
			return nil, err
		}
	}

	patch := ports.ThreatPatch{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Sector:      input.Sector,
	}
	if patch.Title != nil || patch.Description != nil || patch.Priority != nil || patch.Sector != nil {
		threat, err = s.threats.Update(ctx, id, patch)
		if err != nil {
			return nil, err
		}
	}

	return threat, nil
}

// transition applies one CAS-guarded status change and runs the side effects
// owed on verification: scoring and the owner's notification carrying the
// point bonus.
func (s *ThreatService) transition(ctx context.Context, threat *domain.Threat, next domain.ThreatStatus, reviewerID string) (*domain.Threat, error) {
	updated, err := s.threats.UpdateStatus(ctx, threat.ID, threat.Status, next, reviewerID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if next == domain.StatusVerified {
		if _, err := s.scoring.OnReportVerified(ctx, updated.UserID); err != nil {
			s.log.Error().Err(err).Str("threat_id", updated.ID).Msg("failed to score verification")
		} else {
			s.notifier.Push(ports.NotificationInput{
				UserID:  updated.UserID,
				Type:    domain.NotificationThreatVerified,
				Title:   "Report Verified!",
				Message: fmt.Sprintf("Your %s report has been verified by authorities", updated.Type),
				Data:    map[string]any{"threatId": updated.ID, "points": VerificationBonus},
			})
		}
		metrics.ThreatsVerifiedTotal.WithLabelValues(string(updated.Type)).Inc()
	}

	return updated, nil
}

// alertAuthorities fans one alert notification out to every authority user.
func (s *ThreatService) alertAuthorities(ctx context.Context, threat *domain.Threat) {
	authorities, err := s.users.ListByRole(ctx, domain.RoleAuthority)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list authorities for alert")
		return
	}

	area := threat.Sector
	if area == "" {
		area = "the reported area"
	}
	for _, authority := range authorities {
		s.notifier.Push(ports.NotificationInput{
			UserID:  authority.ID,
			Type:    domain.NotificationAlert,
			Title:   "High Priority Threat Reported",
			Message: fmt.Sprintf("New %s threat reported in %s", threat.Type, area),
			Data:    map[string]any{"threatId": threat.ID},
		})
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
