package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/pricing"
	"github.com/iliyamo/venue-simulator/internal/queue"
	"github.com/iliyamo/venue-simulator/internal/reservation"
)

// TicketDesk sells seats. A sale is two-phase: Begin holds the seat and
// quotes it, then the buyer either confirms or abandons.
type TicketDesk struct {
	deps Deps
}

func NewTicketDesk(d Deps) *TicketDesk {
	return &TicketDesk{deps: d.withDefaults()}
}

// Pending is a held seat waiting for the buyer's decision. Exactly one of
// Confirm or Abandon settles it.
type Pending struct {
	desk     *TicketDesk
	Customer *model.Customer
	Match    *model.Match
	Zone     model.Zone
	Quote    pricing.Breakdown
	hold     *reservation.Hold
}

// Seat is the held coordinate.
func (p *Pending) Seat() reservation.Coordinate { return p.hold.Coordinate() }

// Begin resolves customer and match, validates the 1-based row and seat
// against the zone grid of the match venue, occupies the seat and quotes
// the zone price for the customer.
func (d *TicketDesk) Begin(ctx context.Context, customerID, matchID string, zone model.Zone, row, seat int) (*Pending, error) {
	customer, err := d.deps.Registry.Customer(customerID)
	if err != nil {
		return nil, err
	}
	match, err := d.deps.Registry.Match(matchID)
	if err != nil {
		return nil, err
	}
	grid := match.Venue.Grid(zone)
	if _, err := reservation.ValidateRow(grid, strconv.Itoa(row)); err != nil {
		return nil, fmt.Errorf("row %d: %w", row, err)
	}
	if _, err := reservation.ValidateSeat(grid, row, strconv.Itoa(seat)); err != nil {
		return nil, fmt.Errorf("seat %d: %w", seat, err)
	}

	p := &Pending{
		desk:     d,
		Customer: customer,
		Match:    match,
		Zone:     zone,
		Quote:    pricing.TicketQuote(customer.ID, zone),
		hold:     reservation.Take(grid, row, seat),
	}
	d.deps.Log.Debug(d.deps.Log.WithFields(ctx, map[string]any{
		"customer_id": customer.ID, "match_id": match.ID, "zone": string(zone), "seat": p.Seat().String(),
	}), "seat held")
	return p, nil
}

// Confirm issues the ticket, registers it and publishes ticket.issued.
// If the ticket cannot be registered the seat is released.
func (p *Pending) Confirm(ctx context.Context) (*model.Ticket, error) {
	if p.hold.Settled() {
		return nil, reservation.ErrHoldSettled
	}
	reg := p.desk.deps.Registry
	t := &model.Ticket{
		ID:            reg.NextTicketID(),
		Customer:      p.Customer,
		Match:         p.Match,
		Zone:          p.Zone,
		Seat:          p.hold.Coordinate(),
		Subtotal:      p.Quote.Subtotal,
		Discount:      p.Quote.Discount,
		AfterDiscount: p.Quote.AfterDiscount,
		Tax:           p.Quote.Tax,
		Total:         p.Quote.Total,
	}
	if err := reg.AddTicket(t); err != nil {
		if rerr := p.hold.Release(); rerr != nil {
			return nil, errors.Join(err, rerr)
		}
		return nil, err
	}
	if err := p.hold.Confirm(); err != nil {
		return nil, err
	}

	log := p.desk.deps.Log
	ctx = log.WithFields(ctx, map[string]any{
		"ticket_id": t.ID, "customer_id": t.Customer.ID, "match_id": t.Match.ID, "total": t.Total.StringFixed(2),
	})
	log.Info(ctx, "ticket issued")
	p.desk.deps.publish(ctx, queue.NewTicketIssued(queue.TicketIssuedEvent{
		TicketID:     t.ID,
		CustomerID:   t.Customer.ID,
		CustomerName: t.Customer.Name,
		MatchID:      t.Match.ID,
		Match:        t.Match.Title(),
		Venue:        t.Match.Venue.Name,
		Zone:         string(t.Zone),
		Seat:         t.Seat.String(),
		Discount:     t.Discount.StringFixed(2),
		Total:        t.Total.StringFixed(2),
	}))
	return t, nil
}

// Abandon frees the held seat.
func (p *Pending) Abandon(ctx context.Context) error {
	if err := p.hold.Release(); err != nil {
		return err
	}
	p.desk.deps.Log.Debug(p.desk.deps.Log.WithMatch(ctx, p.Match.ID), "seat released")
	return nil
}
