package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/venue-simulator/internal/reservation"
)

// ErrAlreadyAttended is returned when attendance is confirmed twice for
// the same ticket.
var ErrAlreadyAttended = errors.New("attendance already confirmed")

// Ticket is an issued seat for one match. Amounts are copied from the
// quote at issuance and never change; Attended moves from false to true
// once.
//
// Fields:
//  ID            – sequential, 1-based, in issuance order.
//  Customer      – buyer.
//  Match         – fixture the seat is for.
//  Zone          – General or VIP.
//  Seat          – committed 1-based row and seat.
//  Subtotal      – zone base price.
//  Discount      – amount taken off the subtotal.
//  AfterDiscount – subtotal minus discount.
//  Tax           – sale tax on the discounted amount.
//  Total         – amount paid.
//  Attended      – whether the customer was let in.
type Ticket struct {
	ID            int
	Customer      *Customer
	Match         *Match
	Zone          Zone
	Seat          reservation.Coordinate
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	AfterDiscount decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Attended      bool
}

// MarkAttended confirms attendance.
func (t *Ticket) MarkAttended() error {
	if t.Attended {
		return fmt.Errorf("ticket %d: %w", t.ID, ErrAlreadyAttended)
	}
	t.Attended = true
	return nil
}

// Describe renders the ticket for menus.
func (t *Ticket) Describe() string {
	return fmt.Sprintf("-ID: %d\n-Customer: %s\n-Match: %s\n-Zone: %s\n-Seat: %s\n",
		t.ID, t.Customer.Name, t.Match.Title(), t.Zone, t.Seat)
}

// TicketRecord is the persisted form of a ticket. Customer and match are
// stored by identifier and the seat in "row, seat" form.
type TicketRecord struct {
	ID            int             `json:"id" validate:"gte=1"`
	CustomerID    string          `json:"customer" validate:"required"`
	MatchID       string          `json:"match" validate:"required"`
	Seat          string          `json:"seat" validate:"required"`
	Zone          Zone            `json:"zone" validate:"oneof=General VIP"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	AfterDiscount decimal.Decimal `json:"after_discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Attended      bool            `json:"attended"`
}

func (t *Ticket) ToRecord() TicketRecord {
	return TicketRecord{
		ID:            t.ID,
		CustomerID:    t.Customer.ID,
		MatchID:       t.Match.ID,
		Seat:          t.Seat.String(),
		Zone:          t.Zone,
		Subtotal:      t.Subtotal,
		Discount:      t.Discount,
		AfterDiscount: t.AfterDiscount,
		Tax:           t.Tax,
		Total:         t.Total,
		Attended:      t.Attended,
	}
}

// TicketFromRecord rebuilds a ticket from already resolved references.
// It does not touch the venue grid.
func TicketFromRecord(r TicketRecord, customer *Customer, match *Match) (*Ticket, error) {
	seat, err := reservation.ParseCoordinate(r.Seat)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", r.ID, err)
	}
	return &Ticket{
		ID:            r.ID,
		Customer:      customer,
		Match:         match,
		Zone:          r.Zone,
		Seat:          seat,
		Subtotal:      r.Subtotal,
		Discount:      r.Discount,
		AfterDiscount: r.AfterDiscount,
		Tax:           r.Tax,
		Total:         r.Total,
		Attended:      r.Attended,
	}, nil
}
