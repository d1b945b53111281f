package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ticketec/order-system/internal/core/domain"
)

type stubTicketService struct {
	commitFn  func(ctx context.Context, draft *domain.OrderDraft) (*domain.Ticket, error)
	listAllFn func(ctx context.Context, user *domain.User) ([]domain.Ticket, error)
}

func (s *stubTicketService) Commit(ctx context.Context, draft *domain.OrderDraft) (*domain.Ticket, error) {
	return s.commitFn(ctx, draft)
}

func (s *stubTicketService) ListAll(ctx context.Context, user *domain.User) ([]domain.Ticket, error) {
	return s.listAllFn(ctx, user)
}

func sampleTicket(id int64) domain.Ticket {
	return domain.Ticket{
		ID:       id,
		UserID:   1,
		Username: "ana",
		Lines: []domain.TicketLine{
			{ItemName: "Tacos", Category: domain.CategoryDish, Quantity: 2, Subtotal: 30},
			{ItemName: "Agua de Jamaica", Category: domain.CategoryDrink, Quantity: 1, Subtotal: 18},
		},
		Total:         48,
		PaymentMethod: "Efectivo",
		CreatedAt:     time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
}

func TestTicketHandler_Create_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	orders := &stubOrderService{
		buildFn: func(ctx context.Context, user *domain.User, quantities map[string]int, paymentMethod string) (*domain.OrderDraft, error) {
			return &domain.OrderDraft{
				Lines: []domain.OrderLine{
					{ItemName: "Tacos", Category: domain.CategoryDish, Quantity: 2, UnitPrice: 15},
					{ItemName: "Agua de Jamaica", Category: domain.CategoryDrink, Quantity: 1, UnitPrice: 18},
				},
				PaymentMethod: paymentMethod,
				User:          user,
			}, nil
		},
	}
	tickets := &stubTicketService{
		commitFn: func(ctx context.Context, draft *domain.OrderDraft) (*domain.Ticket, error) {
			if draft == nil || len(draft.Lines) != 2 {
				t.Fatalf("unexpected draft: %+v", draft)
			}
			ticket := sampleTicket(1)
			return &ticket, nil
		},
	}
	handler := NewTicketHandler(orders, tickets)

	body := strings.NewReader(`{"items":{"Tacos":2,"Agua de Jamaica":1},"payment_method":"Efectivo"}`)
	req := httptest.NewRequest(http.MethodPost, "/tickets", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp ticketResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 1 || resp.Total != 48.00 {
		t.Fatalf("unexpected ticket: id=%d total=%.2f", resp.ID, resp.Total)
	}
	if !strings.Contains(resp.Receipt, "--- Ticket #1 ---") {
		t.Fatalf("expected rendered receipt, got %q", resp.Receipt)
	}
}

func TestTicketHandler_Create_BuildError(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	orders := &stubOrderService{
		buildFn: func(ctx context.Context, user *domain.User, quantities map[string]int, paymentMethod string) (*domain.OrderDraft, error) {
			return nil, domain.ErrPaymentMethodRequired
		},
	}
	tickets := &stubTicketService{
		commitFn: func(ctx context.Context, draft *domain.OrderDraft) (*domain.Ticket, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTicketHandler(orders, tickets)

	body := strings.NewReader(`{"items":{"Tacos":2}}`)
	req := httptest.NewRequest(http.MethodPost, "/tickets", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	err := handler.Create(c)
	if !errors.Is(err, domain.ErrPaymentMethodRequired) {
		t.Fatalf("expected ErrPaymentMethodRequired, got %v", err)
	}
}

func TestTicketHandler_Create_CommitError(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	orders := &stubOrderService{
		buildFn: func(ctx context.Context, user *domain.User, quantities map[string]int, paymentMethod string) (*domain.OrderDraft, error) {
			return &domain.OrderDraft{
				Lines:         []domain.OrderLine{{ItemName: "Tacos", Quantity: 1, UnitPrice: 15}},
				PaymentMethod: "Efectivo",
				User:          user,
			}, nil
		},
	}
	tickets := &stubTicketService{
		commitFn: func(ctx context.Context, draft *domain.OrderDraft) (*domain.Ticket, error) {
			return nil, domain.ErrStorageUnavailable
		},
	}
	handler := NewTicketHandler(orders, tickets)

	body := strings.NewReader(`{"items":{"Tacos":1},"payment_method":"Efectivo"}`)
	req := httptest.NewRequest(http.MethodPost, "/tickets", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	err := handler.Create(c)
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestTicketHandler_List_Success(t *testing.T) {
	e := echo.New()

	tickets := &stubTicketService{
		listAllFn: func(ctx context.Context, user *domain.User) ([]domain.Ticket, error) {
			if user == nil || user.Username != "ana" {
				t.Fatalf("expected authenticated user, got %+v", user)
			}
			return []domain.Ticket{sampleTicket(1), sampleTicket(2)}, nil
		},
	}
	handler := NewTicketHandler(&stubOrderService{}, tickets)

	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ticketListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(resp.Tickets))
	}
	if resp.Tickets[0].ID != 1 || resp.Tickets[1].ID != 2 {
		t.Fatalf("unexpected order: %+v", resp.Tickets)
	}
}

func TestTicketHandler_List_Empty(t *testing.T) {
	e := echo.New()

	tickets := &stubTicketService{
		listAllFn: func(ctx context.Context, user *domain.User) ([]domain.Ticket, error) {
			return nil, nil
		},
	}
	handler := NewTicketHandler(&stubOrderService{}, tickets)

	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if !strings.Contains(rec.Body.String(), `"tickets":[]`) {
		t.Fatalf("expected empty ticket array, got %s", rec.Body.String())
	}
}
