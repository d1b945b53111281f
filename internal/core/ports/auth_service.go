package ports

import (
	"context"

	"github.com/ticketec/order-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, confirmation string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, tokenID string) error
}
