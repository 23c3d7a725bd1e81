package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps client-supplied Idempotency-Key headers to the threat
// created for them, so retried submissions replay instead of duplicating.
// Key format: idem:threat:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the threat id previously stored under key, or "" when the
// key has not been seen.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, nil
}

// Remember records the threat created for key (expires after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, key, threatID string) error {
	return s.client.Set(ctx, s.key(key), threatID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:threat:" + key
}
