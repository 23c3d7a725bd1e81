package websocket

import (
	"sync"

	"github.com/rs/zerolog"
)

// Registry maps authenticated user identities to live clients. The mapping
// is bidirectional — two indexes kept in sync under one mutex — so teardown
// can resolve a closing client without scanning by value.
//
// At most one live client per user: a new registration replaces and closes
// the previous one.
type Registry struct {
	mu       sync.RWMutex
	byUser   map[string]*Client
	byClient map[*Client]string
	log      zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		byUser:   make(map[string]*Client),
		byClient: make(map[*Client]string),
		log:      log,
	}
}

// Register binds a user identity to a client after an identity claim.
func (r *Registry) Register(userID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byUser[userID]; ok && prev != c {
		delete(r.byClient, prev)
		prev.shutdown()
	}
	// A client re-claiming as a different user drops its old binding.
	if oldID, ok := r.byClient[c]; ok && oldID != userID {
		delete(r.byUser, oldID)
	}

	r.byUser[userID] = c
	r.byClient[c] = userID
	r.log.Debug().Str("user_id", userID).Int("sessions", len(r.byUser)).Msg("live session registered")
}

// Unregister purges whatever identity currently points at the client and
// stops its writer. Safe to call for anonymous or already-removed clients.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if userID, ok := r.byClient[c]; ok {
		delete(r.byClient, c)
		delete(r.byUser, userID)
		r.log.Debug().Str("user_id", userID).Int("sessions", len(r.byUser)).Msg("live session closed")
	}
	c.shutdown()
}

// Deliver pushes a message to the user's live session if one is open.
// Returns false when nobody is there to notify; that is not an error. A full
// send buffer drops the frame rather than blocking.
func (r *Registry) Deliver(userID string, msg Message) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byUser[userID]
	if !ok {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		r.log.Warn().Str("user_id", userID).Msg("live session send buffer full, frame dropped")
		return false
	}
}

// Count reports the number of authenticated live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
