// Package queue publishes ticket events to RabbitMQ for downstream consumers
// such as a kitchen display. Publishing is best-effort: the ticket is already
// durable when Publish runs, so broker failures are logged and returned but
// never escalate into a failed commit.
package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/ticketec/order-system/internal/core/domain"
)

const ticketQueueName = "ticket.created"

// TicketCreatedEvent is the wire form of a committed ticket.
type TicketCreatedEvent struct {
	TicketID      int64             `json:"ticket_id"`
	Username      string            `json:"username"`
	Lines         []TicketEventLine `json:"lines"`
	Total         float64           `json:"total"`
	PaymentMethod string            `json:"payment_method"`
	CreatedAt     time.Time         `json:"created_at"`
}

type TicketEventLine struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// TicketPublisher publishes ticket.created events over AMQP.
type TicketPublisher struct {
	url    string
	logger zerolog.Logger
}

func NewTicketPublisher(url string, logger zerolog.Logger) *TicketPublisher {
	return &TicketPublisher{url: url, logger: logger}
}

// Publish declares the durable queue and publishes one persistent message.
// The connection is short-lived: one dial per commit keeps the publisher free
// of reconnect state, and commits are low-frequency at a single counter.
func (p *TicketPublisher) Publish(ctx context.Context, ticket *domain.Ticket) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn().Err(err).Msg("amqp dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn().Err(err).Msg("amqp channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(ticketQueueName, true, false, false, false, nil); err != nil {
		p.logger.Warn().Err(err).Msg("amqp queue declare failed")
		return err
	}

	body, err := json.Marshal(toEvent(ticket))
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", ticketQueueName, false, false, pub); err != nil {
		p.logger.Warn().Err(err).Int64("ticket_id", ticket.ID).Msg("amqp publish failed")
		return err
	}
	return nil
}

func toEvent(t *domain.Ticket) TicketCreatedEvent {
	ev := TicketCreatedEvent{
		TicketID:      t.ID,
		Username:      t.Username,
		Total:         t.Total,
		PaymentMethod: t.PaymentMethod,
		CreatedAt:     t.CreatedAt,
	}
	for _, l := range t.Lines {
		ev.Lines = append(ev.Lines, TicketEventLine{
			ItemName: l.ItemName,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal,
		})
	}
	return ev
}
