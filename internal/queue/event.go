// Package queue defines the sale events exchanged over the message broker,
// the publisher used by the sale desks and the consumer that appends them
// to the sales log.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Event types carried in Envelope.Type.
const (
	TypeTicketIssued  = "ticket.issued"
	TypeInvoiceIssued = "invoice.issued"
)

// TicketIssuedEvent is published after a ticket purchase is confirmed.
type TicketIssuedEvent struct {
	TicketID     int    `json:"ticket_id"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	MatchID      string `json:"match_id"`
	Match        string `json:"match"`
	Venue        string `json:"venue"`
	Zone         string `json:"zone"`
	Seat         string `json:"seat"`
	Discount     string `json:"discount"`
	Total        string `json:"total"`
}

// InvoiceLine is one product line of an InvoiceIssuedEvent.
type InvoiceLine struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// InvoiceIssuedEvent is published after a concession checkout.
type InvoiceIssuedEvent struct {
	CustomerID   string        `json:"customer_id"`
	CustomerName string        `json:"customer_name"`
	MatchID      string        `json:"match_id"`
	Stand        string        `json:"stand"`
	Lines        []InvoiceLine `json:"lines"`
	Discount     string        `json:"discount"`
	Total        string        `json:"total"`
}

// Envelope wraps exactly one event. Amounts travel as decimal strings.
type Envelope struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	OccurredAt string              `json:"occurred_at"`
	Ticket     *TicketIssuedEvent  `json:"ticket,omitempty"`
	Invoice    *InvoiceIssuedEvent `json:"invoice,omitempty"`
}

func newEnvelope(typ string) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func NewTicketIssued(ev TicketIssuedEvent) Envelope {
	e := newEnvelope(TypeTicketIssued)
	e.Ticket = &ev
	return e
}

func NewInvoiceIssued(ev InvoiceIssuedEvent) Envelope {
	e := newEnvelope(TypeInvoiceIssued)
	e.Invoice = &ev
	return e
}
