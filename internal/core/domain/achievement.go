package domain

import "time"

// AchievementCriteria is the closed set of predicates an achievement can
// require. Exactly one form is populated per catalog entry.
type AchievementCriteria struct {
	ReportsSubmitted int        `json:"reportsSubmitted,omitempty"`
	VerifiedReports  int        `json:"verifiedReports,omitempty"`
	Accuracy         float64    `json:"accuracy,omitempty"`
	ThreatType       ThreatType `json:"threatType,omitempty"`
	Count            int        `json:"count,omitempty"`
}

// Achievement is a static catalog entry describing an earnable badge.
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Points      int                 `json:"points"`
	Criteria    AchievementCriteria `json:"criteria"`
}

// UserAchievement records that a user earned an achievement. Immutable once
// created.
type UserAchievement struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	AchievementID string    `json:"achievementId"`
	EarnedAt      time.Time `json:"earnedAt"`
}
