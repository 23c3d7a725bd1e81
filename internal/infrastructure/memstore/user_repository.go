package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

// Create inserts a new user with zeroed progress counters.
func (r *UserRepository) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}

	stored := *u
	stored.ID = uuid.NewString()
	stored.Points = 0
	stored.Level = domain.LevelForPoints(0)
	stored.Accuracy = 0
	stored.ReportsSubmitted = 0
	stored.VerifiedReports = 0
	stored.CreatedAt = now()

	r.users[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Update applies a merge-patch: only non-nil fields change.
func (r *UserRepository) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if patch.Location != nil {
		u.Location = *patch.Location
	}
	if patch.ProfilePicture != nil {
		u.ProfilePicture = *patch.ProfilePicture
	}

	clone := *u
	return &clone, nil
}

// ApplyStats adjusts counters in one atomic step and refreshes the derived
// accuracy and level so the invariants hold after every mutation.
func (r *UserRepository) ApplyStats(_ context.Context, id string, delta ports.StatsDelta) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	u.ReportsSubmitted += delta.ReportsSubmitted
	u.VerifiedReports += delta.VerifiedReports
	u.Points += delta.Points
	u.RecalcDerived()

	clone := *u
	return &clone, nil
}

// ListTop returns up to limit users ordered by points descending.
func (r *UserRepository) ListTop(_ context.Context, limit int) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Points > out[j].Points })

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *UserRepository) ListByRole(_ context.Context, role string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}
