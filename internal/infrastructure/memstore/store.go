// Package memstore implements the core repository ports with in-memory keyed
// collections. Contents are process-lifetime only; a restart loses all data.
//
// Every repository guards its map with a sync.RWMutex and hands out copies of
// entities, so callers can only reach stored state through repository
// operations.
package memstore

import "time"

// Store groups the repositories sharing one process lifetime. It is built by
// the entry point and injected into services; there is no package-level
// instance.
type Store struct {
	Users         *UserRepository
	Threats       *ThreatRepository
	Achievements  *AchievementRepository
	Notifications *NotificationRepository
}

// New constructs an empty store with the default achievement catalog loaded.
func New() *Store {
	return &Store{
		Users:         NewUserRepository(),
		Threats:       NewThreatRepository(),
		Achievements:  NewAchievementRepository(),
		Notifications: NewNotificationRepository(),
	}
}

// now is stubbed in tests that need deterministic timestamps.
var now = func() time.Time { return time.Now().UTC() }
