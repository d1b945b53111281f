package domain

import (
	"fmt"
	"strings"
	"time"
)

// TicketSeparator closes every rendered ticket block.
const TicketSeparator = "-----------------------------"

// TicketLine is one committed order line with its computed subtotal.
type TicketLine struct {
	ItemName string   `json:"item_name"`
	Category Category `json:"category"`
	Quantity int      `json:"quantity"`
	Subtotal float64  `json:"subtotal"`
}

// Ticket is the permanent, append-only record of a committed order.
type Ticket struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"user_id"`
	Username      string       `json:"username"`
	Lines         []TicketLine `json:"lines"`
	Total         float64      `json:"total"`
	PaymentMethod string       `json:"payment_method"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Render produces the canonical receipt text used both for flat-file storage
// and for display:
//
//	--- Ticket #1 ---
//	Usuario: ana
//	Fecha (UTC): 2026-01-02T15:04:05Z
//
//	Items:
//	 - Tacos x2 : $30.00
//
//	Método de pago: Efectivo
//	TOTAL: $30.00
//	-----------------------------
func (t Ticket) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Ticket #%d ---\n", t.ID)
	fmt.Fprintf(&b, "Usuario: %s\n", t.Username)
	fmt.Fprintf(&b, "Fecha (UTC): %s\n\n", t.CreatedAt.UTC().Format(time.RFC3339))
	b.WriteString("Items:\n")
	for _, l := range t.Lines {
		fmt.Fprintf(&b, " - %s x%d : $%.2f\n", l.ItemName, l.Quantity, l.Subtotal)
	}
	fmt.Fprintf(&b, "\nMétodo de pago: %s\n", t.PaymentMethod)
	fmt.Fprintf(&b, "TOTAL: $%.2f\n", t.Total)
	b.WriteString(TicketSeparator)
	return b.String()
}
