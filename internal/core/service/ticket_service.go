package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ticketec/order-system/internal/core/domain"
	"github.com/ticketec/order-system/internal/core/ports"
)

// TicketService turns confirmed order drafts into durable tickets.
type TicketService struct {
	repo      ports.TicketRepository
	publisher ports.TicketPublisher // may be nil when no broker is configured
	logger    zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, publisher ports.TicketPublisher, logger zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, publisher: publisher, logger: logger}
}

// Commit assigns the next ticket id, computes subtotals and the grand total,
// stamps the creation time in UTC and appends the ticket to durable history.
// Either the full ticket lands in the store or nothing does.
func (s *TicketService) Commit(ctx context.Context, draft *domain.OrderDraft) (*domain.Ticket, error) {
	if draft == nil || draft.User == nil || draft.User.Username == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if len(draft.Lines) == 0 {
		return nil, domain.ErrNoItemsSelected
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.TicketLine, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		lines = append(lines, domain.TicketLine{
			ItemName: l.ItemName,
			Category: l.Category,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}

	ticket := &domain.Ticket{
		ID:            id,
		UserID:        draft.User.ID,
		Username:      draft.User.Username,
		Lines:         lines,
		Total:         draft.Total(),
		PaymentMethod: draft.PaymentMethod,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Append(ctx, ticket); err != nil {
		s.logger.Error().Err(err).Int64("ticket_id", id).Msg("failed to append ticket")
		return nil, err
	}

	s.logger.Info().
		Int64("ticket_id", ticket.ID).
		Str("username", ticket.Username).
		Float64("total", ticket.Total).
		Str("payment_method", ticket.PaymentMethod).
		Msg("ticket committed")

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, ticket); err != nil {
			// The ticket is already durable; a broker outage must not fail
			// the commit.
			s.logger.Warn().Err(err).Int64("ticket_id", ticket.ID).Msg("ticket event publish failed")
		}
	}

	return ticket, nil
}

// ListAll returns the full ticket history in commit order. The store is
// re-read on every call.
func (s *TicketService) ListAll(ctx context.Context, user *domain.User) ([]domain.Ticket, error) {
	if user == nil || user.Username == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.repo.ListAll(ctx)
}
