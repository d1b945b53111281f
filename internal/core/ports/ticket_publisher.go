package ports

import (
	"context"

	"github.com/ticketec/order-system/internal/core/domain"
)

// TicketPublisher notifies external consumers (kitchen display, reporting)
// that a ticket was committed. Publishing is best-effort: the commit has
// already been made durable when Publish is called.
type TicketPublisher interface {
	Publish(ctx context.Context, ticket *domain.Ticket) error
}
