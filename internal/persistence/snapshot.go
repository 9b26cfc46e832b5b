// Package persistence saves and restores the registry as six flat record
// lists. Seat grids are not stored: Restore rebuilds them from capacity
// and re-occupies the seat of every persisted ticket.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/repository"
)

var (
	// ErrNoSnapshot is returned by a store that has never been saved to.
	ErrNoSnapshot = errors.New("no saved snapshot")
	// ErrCorrupt is returned when a snapshot cannot be restored as is.
	ErrCorrupt = errors.New("corrupt snapshot")
)

// Record list names, in save and restore order.
const (
	KindTeams     = "teams"
	KindVenues    = "venues"
	KindMatches   = "matches"
	KindCustomers = "customers"
	KindTickets   = "tickets"
	KindInvoices  = "invoices"
)

// Kinds lists every record list.
var Kinds = []string{KindTeams, KindVenues, KindMatches, KindCustomers, KindTickets, KindInvoices}

// Store keeps one snapshot.
type Store interface {
	Save(ctx context.Context, s *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}

type Snapshot struct {
	Teams     []model.TeamRecord     `json:"teams"`
	Venues    []model.VenueRecord    `json:"venues"`
	Matches   []model.MatchRecord    `json:"matches"`
	Customers []model.CustomerRecord `json:"customers"`
	Tickets   []model.TicketRecord   `json:"tickets"`
	Invoices  []model.InvoiceRecord  `json:"invoices"`
}

// Capture copies the registry into records.
func Capture(reg *repository.Registry) *Snapshot {
	s := &Snapshot{}
	for _, t := range reg.Teams() {
		s.Teams = append(s.Teams, t.ToRecord())
	}
	for _, v := range reg.Venues() {
		s.Venues = append(s.Venues, v.ToRecord())
	}
	for _, m := range reg.Matches() {
		s.Matches = append(s.Matches, m.ToRecord())
	}
	for _, c := range reg.Customers() {
		s.Customers = append(s.Customers, c.ToRecord())
	}
	for _, t := range reg.Tickets() {
		s.Tickets = append(s.Tickets, t.ToRecord())
	}
	for _, inv := range reg.Invoices() {
		s.Invoices = append(s.Invoices, inv.ToRecord())
	}
	return s
}

// Encode marshals each list separately, keyed by kind.
func (s *Snapshot) Encode() (map[string][]byte, error) {
	lists := map[string]any{
		KindTeams:     nonNil(s.Teams),
		KindVenues:    nonNil(s.Venues),
		KindMatches:   nonNil(s.Matches),
		KindCustomers: nonNil(s.Customers),
		KindTickets:   nonNil(s.Tickets),
		KindInvoices:  nonNil(s.Invoices),
	}
	out := make(map[string][]byte, len(lists))
	for kind, list := range lists {
		b, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", kind, err)
		}
		out[kind] = b
	}
	return out, nil
}

// Decode is the inverse of Encode. Missing kinds decode as empty lists.
func Decode(parts map[string][]byte) (*Snapshot, error) {
	s := &Snapshot{}
	targets := map[string]any{
		KindTeams:     &s.Teams,
		KindVenues:    &s.Venues,
		KindMatches:   &s.Matches,
		KindCustomers: &s.Customers,
		KindTickets:   &s.Tickets,
		KindInvoices:  &s.Invoices,
	}
	for kind, dst := range targets {
		b, ok := parts[kind]
		if !ok || len(b) == 0 {
			continue
		}
		if err := json.Unmarshal(b, dst); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, kind, err)
		}
	}
	return s, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
