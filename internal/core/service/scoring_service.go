package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

// VerificationBonus is the fixed point reward for a verified report.
const VerificationBonus = 50

// ScoringService owns the points and accuracy bookkeeping that follows a
// report through its lifecycle. Counter updates go through the store's atomic
// ApplyStats, which also refreshes the derived accuracy and level.
type ScoringService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewScoringService(users ports.UserRepository, log zerolog.Logger) *ScoringService {
	return &ScoringService{users: users, log: log}
}

// OnReportSubmitted increments the owner's submission counter. Runs at
// creation time, before any verification.
func (s *ScoringService) OnReportSubmitted(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.ApplyStats(ctx, userID, ports.StatsDelta{ReportsSubmitted: 1})
}

// OnReportVerified credits the owner for a verified report. Callers must
// invoke this at most once per threat; the transition compare-and-set
// guarantees that.
func (s *ScoringService) OnReportVerified(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.ApplyStats(ctx, userID, ports.StatsDelta{
		VerifiedReports: 1,
		Points:          VerificationBonus,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Int("points", user.Points).
		Float64("accuracy", user.Accuracy).
		Int("level", user.Level).
		Msg("verification scored")

	return user, nil
}
