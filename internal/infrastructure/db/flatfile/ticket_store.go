package flatfile

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ticketec/order-system/internal/core/domain"
)

// TicketStore persists tickets as rendered blocks in an append-only text
// file, each block closed by the separator line. The next ticket id is
// max(stored ids)+1, seeded by parsing the file once at startup and cached
// afterwards, never derived from counting lines.
type TicketStore struct {
	mu     sync.Mutex
	path   string
	lastID int64
}

// NewTicketStore opens (creating if necessary) the tickets file and seeds the
// id counter from the highest stored ticket id.
func NewTicketStore(path string) (*TicketStore, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: open tickets file: %v", domain.ErrStorageUnavailable, err)
	}
	_ = f.Close()

	s := &TicketStore{path: path}
	tickets, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s, nil
}

// NextID returns the id the next Append will use. It does not reserve the id:
// a failed commit leaves the sequence unchanged so a retry gets the same id.
func (s *TicketStore) NextID(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastID + 1, nil
}

// Append writes the rendered ticket block followed by a blank line in a
// single write, then advances the cached id. The definitive id is assigned
// here, under the same lock that guards the sequence: a commit that raced
// another between NextID and Append gets the next free id instead of
// duplicating one.
func (s *TicketStore) Append(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket.ID = s.lastID + 1

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("%w: open tickets file: %v", domain.ErrStorageUnavailable, err)
	}
	defer f.Close()

	if _, err := f.WriteString(ticket.Render() + "\n\n"); err != nil {
		return fmt.Errorf("%w: append ticket: %v", domain.ErrStorageUnavailable, err)
	}

	s.lastID = ticket.ID
	return nil
}

// ListAll re-reads the file and returns every parseable ticket in file order.
func (s *TicketStore) ListAll(_ context.Context) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *TicketStore) readAll() ([]domain.Ticket, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read tickets file: %v", domain.ErrStorageUnavailable, err)
	}

	// Blocks contain blank lines, so they are delimited by the separator
	// line, not by blank lines. A header always opens a fresh block;
	// unterminated or corrupt blocks are skipped and the rest of the
	// history stays readable.
	var (
		tickets []domain.Ticket
		block   []string
	)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "--- Ticket #"):
			block = append(block[:0], line)
		case line == domain.TicketSeparator:
			if len(block) > 0 {
				if t, ok := parseBlock(strings.Join(block, "\n")); ok {
					tickets = append(tickets, t)
				}
				block = block[:0]
			}
		case len(block) > 0:
			block = append(block, line)
		}
	}
	return tickets, nil
}

// parseBlock reverses domain.Ticket.Render for one stored block.
func parseBlock(block string) (domain.Ticket, bool) {
	var t domain.Ticket
	lines := strings.Split(block, "\n")
	if len(lines) < 5 {
		return t, false
	}

	header := lines[0]
	if !strings.HasPrefix(header, "--- Ticket #") || !strings.HasSuffix(header, " ---") {
		return t, false
	}
	idText := strings.TrimSuffix(strings.TrimPrefix(header, "--- Ticket #"), " ---")
	id, err := strconv.ParseInt(idText, 10, 64)
	if err != nil || id <= 0 {
		return t, false
	}
	t.ID = id

	inItems := false
	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, "Usuario: "):
			t.Username = strings.TrimPrefix(line, "Usuario: ")
		case strings.HasPrefix(line, "Fecha (UTC): "):
			created, err := time.Parse(time.RFC3339, strings.TrimPrefix(line, "Fecha (UTC): "))
			if err != nil {
				return domain.Ticket{}, false
			}
			t.CreatedAt = created
		case line == "Items:":
			inItems = true
		case inItems && strings.HasPrefix(line, " - "):
			l, ok := parseItemLine(line)
			if !ok {
				return domain.Ticket{}, false
			}
			t.Lines = append(t.Lines, l)
		case strings.HasPrefix(line, "Método de pago: "):
			inItems = false
			t.PaymentMethod = strings.TrimPrefix(line, "Método de pago: ")
		case strings.HasPrefix(line, "TOTAL: $"):
			total, err := strconv.ParseFloat(strings.TrimPrefix(line, "TOTAL: $"), 64)
			if err != nil {
				return domain.Ticket{}, false
			}
			t.Total = total
		}
	}

	if t.Username == "" || t.PaymentMethod == "" || len(t.Lines) == 0 {
		return domain.Ticket{}, false
	}
	return t, true
}

// parseItemLine parses " - <name> x<qty> : $<subtotal>". Item names may
// contain spaces, so the quantity marker is located from the right.
func parseItemLine(line string) (domain.TicketLine, bool) {
	var l domain.TicketLine
	body, amount, ok := strings.Cut(strings.TrimPrefix(line, " - "), " : $")
	if !ok {
		return l, false
	}

	at := strings.LastIndex(body, " x")
	if at < 1 {
		return l, false
	}
	qty, err := strconv.Atoi(body[at+2:])
	if err != nil || qty <= 0 {
		return l, false
	}
	subtotal, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return l, false
	}

	l.ItemName = body[:at]
	l.Quantity = qty
	l.Subtotal = subtotal
	return l, true
}
