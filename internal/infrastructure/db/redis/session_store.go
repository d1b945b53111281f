package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks active login sessions in Redis.
// Key format: session:<token_id>, value: username, expiring with the token.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Start records a new active session for tokenID.
func (s *SessionStore) Start(ctx context.Context, tokenID, username string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(tokenID), username, ttl).Err(); err != nil {
		return fmt.Errorf("session start: %w", err)
	}
	return nil
}

// Active reports whether the session behind tokenID is still live.
func (s *SessionStore) Active(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

// Revoke ends the session. Revoking an already-ended session is a no-op.
func (s *SessionStore) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, s.key(tokenID)).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}

func (s *SessionStore) key(tokenID string) string {
	return "session:" + tokenID
}
