package ports

import (
	"context"

	"github.com/ticketec/order-system/internal/core/domain"
)

// TicketRepository defines the interface for the durable ticket ledger.
type TicketRepository interface {
	// NextID returns the id the next Append will assign: max(existing
	// ids)+1, starting at 1. The id is not reserved; a failed commit
	// leaves the sequence unchanged.
	NextID(ctx context.Context) (int64, error)
	// Append durably stores a finalised ticket. All-or-nothing: no partial
	// ticket may be observable afterwards. Two concurrent commits must
	// never store the same id: implementations either assign the
	// definitive id to ticket.ID under their own serialisation or fail
	// the later of the conflicting commits.
	Append(ctx context.Context, ticket *domain.Ticket) error
	// ListAll returns every stored ticket in commit order, re-read from the
	// store on each call. Malformed records are skipped, not returned as
	// errors.
	ListAll(ctx context.Context) ([]domain.Ticket, error)
}
