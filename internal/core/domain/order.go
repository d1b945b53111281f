package domain

// OrderLine is one selected item with its quantity and the unit price captured
// at build time. Prices are frozen here so later catalog changes never alter
// an already-built order.
type OrderLine struct {
	ItemName  string   `json:"item_name"`
	Category  Category `json:"category"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
}

// Subtotal returns quantity × unit price for this line.
func (l OrderLine) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// OrderDraft is a validated, immutable selection waiting for confirmation.
// It exists only between the menu screen and ticket commit and is consumed
// exactly once by the ticket ledger.
type OrderDraft struct {
	Lines         []OrderLine `json:"lines"`
	PaymentMethod string      `json:"payment_method"`
	User          *User       `json:"-"`
}

// Total sums every line's subtotal. Full float precision; rounding to two
// decimals happens only at render time.
func (d OrderDraft) Total() float64 {
	var total float64
	for _, l := range d.Lines {
		total += l.Subtotal()
	}
	return total
}
