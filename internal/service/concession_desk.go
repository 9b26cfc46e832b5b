package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/venue-simulator/internal/inventory"
	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/pricing"
	"github.com/iliyamo/venue-simulator/internal/queue"
	"github.com/iliyamo/venue-simulator/internal/repository"
)

// ConcessionDesk sells stand products to customers who attended a match.
type ConcessionDesk struct {
	deps Deps
}

func NewConcessionDesk(d Deps) *ConcessionDesk {
	return &ConcessionDesk{deps: d.withDefaults()}
}

// AttendedTickets lists the customer's tickets whose attendance was
// confirmed.
func (d *ConcessionDesk) AttendedTickets(customerID string) []*model.Ticket {
	var out []*model.Ticket
	for _, t := range d.deps.Registry.TicketsFor(customerID) {
		if t.Attended {
			out = append(out, t)
		}
	}
	return out
}

// Session is one customer's visit to one stand. It ends with Checkout or
// Cancel.
type Session struct {
	desk     *ConcessionDesk
	Customer *model.Customer
	Ticket   *model.Ticket
	Stand    *model.Stand
	cart     *inventory.Cart
	closed   bool
}

// Open starts a purchase at the stand with the given 0-based index in the
// venue of the ticket's match.
func (d *ConcessionDesk) Open(ctx context.Context, customerID string, ticketID, standIndex int) (*Session, error) {
	customer, err := d.deps.Registry.Customer(customerID)
	if err != nil {
		return nil, err
	}
	t, err := d.deps.Registry.Ticket(ticketID)
	if err != nil {
		return nil, err
	}
	if t.Customer.ID != customer.ID {
		return nil, fmt.Errorf("ticket %d: %w", ticketID, repository.ErrForbidden)
	}
	if !t.Attended {
		return nil, fmt.Errorf("ticket %d: %w", ticketID, ErrNotAttended)
	}
	venue := t.Match.Venue
	if !venue.HasConcessionStock() {
		return nil, fmt.Errorf("venue %q: %w", venue.Name, ErrNoStock)
	}
	if standIndex < 0 || standIndex >= len(venue.Stands) {
		return nil, fmt.Errorf("stand %d at %q: %w", standIndex+1, venue.Name, repository.ErrNotFound)
	}
	stand := venue.Stands[standIndex]
	if !stand.Catalogue.HasStock() {
		return nil, fmt.Errorf("stand %q: %w", stand.Name, ErrNoStock)
	}
	d.deps.Log.Debug(d.deps.Log.WithFields(ctx, map[string]any{"customer_id": customer.ID, "stand": stand.Name}), "concession session opened")
	return &Session{desk: d, Customer: customer, Ticket: t, Stand: stand, cart: inventory.NewCart()}, nil
}

// Available lists the stand products that can still be sold.
func (s *Session) Available() []*inventory.Product { return s.Stand.Catalogue.Available() }

// Cart exposes the lines collected so far.
func (s *Session) Cart() *inventory.Cart { return s.cart }

// Add puts quantity units of the named product in the cart. Sold-out
// products cannot be added.
func (s *Session) Add(name string, quantity int) error {
	if s.closed {
		return ErrClosed
	}
	p, err := s.Stand.Catalogue.Lookup(name)
	if err != nil {
		return err
	}
	if !p.InStock() {
		return fmt.Errorf("product %q: %w", name, ErrNoStock)
	}
	return s.cart.Add(p, quantity)
}

// Quote previews the payable amount of the whole cart.
func (s *Session) Quote() pricing.Breakdown {
	return pricing.ConcessionQuote(s.Customer.ID, s.cart.Subtotal())
}

// Receipt is the outcome of a checkout.
type Receipt struct {
	Invoice  *model.Invoice
	Quote    pricing.Breakdown
	Rejected []inventory.RejectedLine
}

// Checkout commits the cart against stock, prices the committed lines,
// records the invoice and publishes invoice.issued. Lines exceeding stock
// are rejected and reported on the receipt; if none commit, no invoice is
// created.
func (s *Session) Checkout(ctx context.Context) (*Receipt, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.cart.Empty() {
		return nil, ErrEmptyCart
	}
	s.closed = true

	res := inventory.CommitSale(s.cart)
	if len(res.Committed) == 0 {
		return &Receipt{Rejected: res.Rejected}, fmt.Errorf("no line committed: %w", inventory.ErrInsufficientStock)
	}

	quote := pricing.ConcessionQuote(s.Customer.ID, res.Subtotal())
	inv := &model.Invoice{
		Customer: s.Customer,
		Match:    s.Ticket.Match,
		Stand:    s.Stand,
		Subtotal: quote.Subtotal,
		Discount: quote.Discount,
		Tax:      quote.Tax,
		Total:    quote.Total,
	}
	lines := make([]queue.InvoiceLine, 0, len(res.Committed))
	for _, l := range res.Committed {
		inv.Lines = append(inv.Lines, model.InvoiceLine{Product: l.Product, Quantity: l.Quantity})
		lines = append(lines, queue.InvoiceLine{Product: l.Product.Name, Quantity: l.Quantity})
	}
	deps := s.desk.deps
	deps.Registry.AddInvoice(inv)

	ctx = deps.Log.WithFields(ctx, map[string]any{
		"customer_id": inv.Customer.ID, "stand": inv.Stand.Name, "total": inv.Total.StringFixed(2), "rejected": len(res.Rejected),
	})
	deps.Log.Info(ctx, "invoice issued")
	deps.publish(ctx, queue.NewInvoiceIssued(queue.InvoiceIssuedEvent{
		CustomerID:   inv.Customer.ID,
		CustomerName: inv.Customer.Name,
		MatchID:      inv.Match.ID,
		Stand:        inv.Stand.Name,
		Lines:        lines,
		Discount:     inv.Discount.StringFixed(2),
		Total:        inv.Total.StringFixed(2),
	}))
	return &Receipt{Invoice: inv, Quote: quote, Rejected: res.Rejected}, nil
}

// Cancel ends the session without touching stock.
func (s *Session) Cancel() {
	s.closed = true
}
