package service

import (
	"context"

	"github.com/ticketec/order-system/internal/core/domain"
)

// OrderService builds validated order drafts from raw menu selections.
type OrderService struct {
	catalog *domain.Catalog
}

func NewOrderService(catalog *domain.Catalog) *OrderService {
	return &OrderService{catalog: catalog}
}

// Build filters out zero quantities, captures each item's unit price from the
// catalog, and validates the result. Lines come out in catalog menu order so
// the same selection always renders the same receipt.
func (s *OrderService) Build(_ context.Context, user *domain.User, quantities map[string]int, paymentMethod string) (*domain.OrderDraft, error) {
	if user == nil || user.Username == "" {
		return nil, domain.ErrNotAuthenticated
	}

	// Unknown item names fail before the emptiness check so the caller
	// learns about a stale menu rather than an empty selection.
	for name := range quantities {
		if _, err := s.catalog.Lookup(name); err != nil {
			return nil, err
		}
	}

	var lines []domain.OrderLine
	for _, item := range s.catalog.Items() {
		qty := quantities[item.Name]
		if qty <= 0 {
			continue
		}
		lines = append(lines, domain.OrderLine{
			ItemName:  item.Name,
			Category:  item.Category,
			Quantity:  qty,
			UnitPrice: item.UnitPrice,
		})
	}

	if len(lines) == 0 {
		return nil, domain.ErrNoItemsSelected
	}
	if paymentMethod == "" || !s.catalog.AcceptsPayment(paymentMethod) {
		return nil, domain.ErrPaymentMethodRequired
	}

	return &domain.OrderDraft{
		Lines:         lines,
		PaymentMethod: paymentMethod,
		User:          user,
	}, nil
}
