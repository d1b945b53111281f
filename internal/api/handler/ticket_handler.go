package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ticketec/order-system/internal/api/metrics"
	"github.com/ticketec/order-system/internal/core/domain"
	"github.com/ticketec/order-system/internal/core/ports"
)

// TicketHandler commits confirmed orders and serves the ticket history.
type TicketHandler struct {
	orders  ports.OrderService
	tickets ports.TicketService
}

func NewTicketHandler(orders ports.OrderService, tickets ports.TicketService) *TicketHandler {
	return &TicketHandler{orders: orders, tickets: tickets}
}

type ticketLineResponse struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type ticketResponse struct {
	ID            int64                `json:"id"`
	Username      string               `json:"username"`
	Lines         []ticketLineResponse `json:"lines"`
	Total         float64              `json:"total"`
	PaymentMethod string               `json:"payment_method"`
	CreatedAt     time.Time            `json:"created_at"`
	Receipt       string               `json:"receipt"`
}

type ticketListResponse struct {
	Tickets []ticketResponse `json:"tickets"`
}

// Create rebuilds the draft from the confirmed selection and commits it as a
// ticket. The selection is re-validated and re-priced on commit so a stale
// confirmation screen can never write unchecked data.
//
// @Summary      Commit an order as a ticket
// @Tags         tickets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      orderRequest  true  "Confirmed selection"
// @Success      201   {object}  ticketResponse
// @Failure      422   {object}  map[string]string
// @Router       /tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
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

	ctx := c.Request().Context()
	draft, err := h.orders.Build(ctx, user, req.Items, req.PaymentMethod)
	if err != nil {
		return err
	}

	ticket, err := h.tickets.Commit(ctx, draft)
	if err != nil {
		return err
	}

	metrics.TicketsCreatedTotal.WithLabelValues(ticket.PaymentMethod).Inc()
	metrics.TicketTotalAmount.Observe(ticket.Total)

	return c.JSON(http.StatusCreated, toTicketResponse(*ticket))
}

// List returns the full ticket history in commit order.
//
// @Summary      List all tickets
// @Tags         tickets
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  ticketListResponse
// @Router       /tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	tickets, err := h.tickets.ListAll(c.Request().Context(), user)
	if err != nil {
		return err
	}

	resp := ticketListResponse{Tickets: make([]ticketResponse, 0, len(tickets))}
	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, toTicketResponse(t))
	}
	return c.JSON(http.StatusOK, resp)
}

func toTicketResponse(t domain.Ticket) ticketResponse {
	resp := ticketResponse{
		ID:            t.ID,
		Username:      t.Username,
		Total:         t.Total,
		PaymentMethod: t.PaymentMethod,
		CreatedAt:     t.CreatedAt,
		Receipt:       t.Render(),
	}
	for _, l := range t.Lines {
		resp.Lines = append(resp.Lines, ticketLineResponse{
			ItemName: l.ItemName,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal,
		})
	}
	return resp
}
