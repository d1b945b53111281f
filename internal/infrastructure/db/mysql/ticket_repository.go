package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ticketec/order-system/internal/core/domain"
)

// TicketRepository persists tickets and their line items. A commit is one
// transaction over both tables, so a ticket row without its items is never
// observable.
type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// NextID derives the next ticket id from the stored maximum. The reference
// design assumes a single process; concurrent writers would need this moved
// inside a locking transaction together with Append.
func (r *TicketRepository) NextID(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var next int64
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM tickets").Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next ticket id: %w", err)
	}
	return next, nil
}

func (r *TicketRepository) Append(ctx context.Context, ticket *domain.Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ticket tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	userID := sql.NullInt64{Int64: ticket.UserID, Valid: ticket.UserID != 0}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO tickets (id, user_id, username, total, payment_method, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		ticket.ID, userID, ticket.Username, ticket.Total, ticket.PaymentMethod, ticket.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}

	for _, l := range ticket.Lines {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO ticket_items (ticket_id, item_name, item_type, quantity, price) VALUES (?, ?, ?, ?, ?)",
			ticket.ID, l.ItemName, string(l.Category), l.Quantity, l.Subtotal); err != nil {
			return fmt.Errorf("insert ticket item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ticket tx: %w", err)
	}
	return nil
}

func (r *TicketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, COALESCE(user_id, 0), username, total, payment_method, created_at FROM tickets ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	index := make(map[int64]int)
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.UserID, &t.Username, &t.Total, &t.PaymentMethod, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		index[t.ID] = len(tickets)
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	itemRows, err := r.db.QueryContext(ctx,
		"SELECT ticket_id, item_name, item_type, quantity, price FROM ticket_items ORDER BY ticket_id, id")
	if err != nil {
		return nil, fmt.Errorf("list ticket items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			ticketID int64
			line     domain.TicketLine
			itemType string
		)
		if err := itemRows.Scan(&ticketID, &line.ItemName, &itemType, &line.Quantity, &line.Subtotal); err != nil {
			return nil, fmt.Errorf("scan ticket item: %w", err)
		}
		line.Category = domain.Category(itemType)
		if i, ok := index[ticketID]; ok {
			tickets[i].Lines = append(tickets[i].Lines, line)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("list ticket items: %w", err)
	}

	return tickets, nil
}
