package domain

import (
	"errors"
	"math"
	"time"
)

const (
	RoleGuardian  = "guardian"
	RoleAuthority = "authority"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// pointsPerLevel is the fixed width of each level band.
const pointsPerLevel = 500

// User models a registered community member or authority reviewer.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	Points           int       `json:"points"`
	Level            int       `json:"level"`
	Accuracy         float64   `json:"accuracy"`
	ReportsSubmitted int       `json:"reportsSubmitted"`
	VerifiedReports  int       `json:"verifiedReports"`
	Location         string    `json:"location,omitempty"`
	ProfilePicture   string    `json:"profilePicture,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// LevelForPoints derives the level band for a points total. Monotonic and
// never below 1.
func LevelForPoints(points int) int {
	if points < 0 {
		return 1
	}
	return 1 + points/pointsPerLevel
}

// AccuracyFor computes the verified-to-submitted ratio as a percentage,
// rounded to two decimals. Zero submissions yields 0 rather than NaN.
func AccuracyFor(verified, submitted int) float64 {
	if submitted <= 0 {
		return 0
	}
	return math.Round(float64(verified)/float64(submitted)*100*100) / 100
}

// RecalcDerived refreshes the fields that are functions of the counters.
// Must be called after every mutation of points or report counts so the
// accuracy and level invariants hold.
func (u *User) RecalcDerived() {
	u.Accuracy = AccuracyFor(u.VerifiedReports, u.ReportsSubmitted)
	u.Level = LevelForPoints(u.Points)
}
