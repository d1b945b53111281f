package ports

import (
	"context"

	"github.com/ticketec/order-system/internal/core/domain"
)

// CredentialRepository defines the interface for user credential persistence.
// Implementations must reject a Create for an already-taken username with
// domain.ErrUsernameTaken.
type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
