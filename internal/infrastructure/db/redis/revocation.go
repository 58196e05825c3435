package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore is a token denylist backed by Redis.
// Key format: revoked:<jti>; entries expire with the token itself, so
// the list never grows past the set of live sessions.
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke records the token id until its natural expiry.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, until time.Duration) error {
	if until <= 0 {
		// Already expired; nothing to deny.
		return nil
	}
	if err := s.client.Set(ctx, s.key(jti), "1", until).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been logged out.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *RevocationStore) key(jti string) string {
	return "revoked:" + jti
}
