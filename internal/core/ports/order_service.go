package ports

import (
	"context"

	"github.com/ticketec/order-system/internal/core/domain"
)

// OrderService validates a raw selection into an immutable order draft.
type OrderService interface {
	// Build filters zero quantities, captures unit prices from the catalog
	// and validates the selection. Pure: no side effects.
	Build(ctx context.Context, user *domain.User, quantities map[string]int, paymentMethod string) (*domain.OrderDraft, error)
}

// TicketService owns ticket-id assignment, receipt rendering and the durable
// history.
type TicketService interface {
	Commit(ctx context.Context, draft *domain.OrderDraft) (*domain.Ticket, error)
	ListAll(ctx context.Context, user *domain.User) ([]domain.Ticket, error)
}
