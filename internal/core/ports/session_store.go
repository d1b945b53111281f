package ports

import (
	"context"
	"time"
)

// SessionStore tracks the set of active login sessions by token id. A login
// starts a session, a logout revokes it, and the auth middleware checks
// liveness on every gated request.
type SessionStore interface {
	Start(ctx context.Context, tokenID, username string, ttl time.Duration) error
	Active(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}
