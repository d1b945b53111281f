package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketec/order-system/internal/core/domain"
	"github.com/ticketec/order-system/internal/core/ports"
)

// OrderHandler turns raw menu selections into priced drafts for the
// confirmation screen.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderRequest struct {
	// Items maps item name to quantity; zero quantities are ignored.
	Items         map[string]int `json:"items" validate:"required"`
	PaymentMethod string         `json:"payment_method"`
}

type quoteLine struct {
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type quoteResponse struct {
	Lines         []quoteLine `json:"lines"`
	PaymentMethod string      `json:"payment_method"`
	Total         float64     `json:"total"`
}

// Quote validates the selection and returns per-line subtotals and the grand
// total without committing anything.
//
// @Summary      Price an order selection
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      orderRequest  true  "Selection and payment method"
// @Success      200   {object}  quoteResponse
// @Failure      422   {object}  map[string]string
// @Router       /orders/quote [post]
func (h *OrderHandler) Quote(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validQuantities(req.Items); err != nil {
		return err
	}

	draft, err := h.orders.Build(c.Request().Context(), user, req.Items, req.PaymentMethod)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toQuoteResponse(draft))
}

// validQuantities rejects negative quantities before they reach the builder.
func validQuantities(items map[string]int) error {
	for name, qty := range items {
		if qty < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "quantity for "+name+" must not be negative")
		}
	}
	return nil
}

func toQuoteResponse(draft *domain.OrderDraft) quoteResponse {
	resp := quoteResponse{
		PaymentMethod: draft.PaymentMethod,
		Total:         draft.Total(),
	}
	for _, l := range draft.Lines {
		resp.Lines = append(resp.Lines, quoteLine{
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}
	return resp
}
