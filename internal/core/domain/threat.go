package domain

import (
	"errors"
	"time"
)

// ThreatStatus represents the lifecycle state of a threat report.
type ThreatStatus string

const (
	StatusPending  ThreatStatus = "pending"
	StatusVerified ThreatStatus = "verified"
	StatusRejected ThreatStatus = "rejected"
	StatusResolved ThreatStatus = "resolved"
)

// validTransitions defines the allowed state machine transitions.
// Rejection and resolution are terminal.
var validTransitions = map[ThreatStatus][]ThreatStatus{
	StatusPending:  {StatusVerified, StatusRejected},
	StatusVerified: {StatusResolved},
}

// ThreatType classifies the reported environmental hazard.
type ThreatType string

const (
	ThreatLogging     ThreatType = "logging"
	ThreatPollution   ThreatType = "pollution"
	ThreatDevelopment ThreatType = "development"
	ThreatWildlife    ThreatType = "wildlife"
	ThreatOther       ThreatType = "other"
)

// ThreatPriority ranks how urgently a threat needs authority attention.
type ThreatPriority string

const (
	PriorityLow    ThreatPriority = "low"
	PriorityMedium ThreatPriority = "medium"
	PriorityHigh   ThreatPriority = "high"
)

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrStatusConflict = errors.New("threat status changed concurrently")
var ErrThreatNotFound = errors.New("threat not found")
var ErrNotificationNotFound = errors.New("notification not found")
var ErrAchievementNotFound = errors.New("achievement not found")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ThreatStatus) CanTransitionTo(next ThreatStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Threat is the core aggregate: one user's report of an environmental hazard.
type Threat struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	Type         ThreatType     `json:"type"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Location     Coordinates    `json:"location"`
	Photos       []string       `json:"photos"`
	Status       ThreatStatus   `json:"status"`
	Priority     ThreatPriority `json:"priority"`
	VerifiedBy   string         `json:"verifiedBy,omitempty"`
	VerifiedAt   *time.Time     `json:"verifiedAt,omitempty"`
	AIConfidence float64        `json:"aiConfidence,omitempty"`
	Sector       string         `json:"sector,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
