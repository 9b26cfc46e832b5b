package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/venue-simulator/internal/inventory"
	"github.com/iliyamo/venue-simulator/internal/model"
)

// Registry is the keyed store behind one simulator session. Every list
// keeps insertion order; the maps give identifier lookups. It is not safe
// for concurrent use.
type Registry struct {
	teams     []*model.Team
	teamByID  map[string]*model.Team
	venues    []*model.Venue
	venueByID map[int]*model.Venue
	matches   []*model.Match
	matchByID map[string]*model.Match

	customers    []*model.Customer
	customerByID map[string]*model.Customer
	tickets      []*model.Ticket
	ticketByID   map[int]*model.Ticket
	invoices     []*model.Invoice
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset drops every entry.
func (r *Registry) Reset() {
	r.teams, r.teamByID = nil, make(map[string]*model.Team)
	r.venues, r.venueByID = nil, make(map[int]*model.Venue)
	r.matches, r.matchByID = nil, make(map[string]*model.Match)
	r.customers, r.customerByID = nil, make(map[string]*model.Customer)
	r.tickets, r.ticketByID = nil, make(map[int]*model.Ticket)
	r.invoices = nil
}

// Empty reports whether nothing has been loaded.
func (r *Registry) Empty() bool {
	return len(r.teams) == 0 && len(r.venues) == 0 && len(r.matches) == 0
}

func (r *Registry) AddTeam(t *model.Team) error {
	if _, ok := r.teamByID[t.ID]; ok {
		return fmt.Errorf("team %q: %w", t.ID, ErrConflict)
	}
	r.teamByID[t.ID] = t
	r.teams = append(r.teams, t)
	return nil
}

func (r *Registry) Team(id string) (*model.Team, error) {
	t, ok := r.teamByID[id]
	if !ok {
		return nil, fmt.Errorf("team %q: %w", id, ErrNotFound)
	}
	return t, nil
}

func (r *Registry) Teams() []*model.Team { return clone(r.teams) }

func (r *Registry) AddVenue(v *model.Venue) error {
	if _, ok := r.venueByID[v.ID]; ok {
		return fmt.Errorf("venue %d: %w", v.ID, ErrConflict)
	}
	r.venueByID[v.ID] = v
	r.venues = append(r.venues, v)
	return nil
}

func (r *Registry) Venue(id int) (*model.Venue, error) {
	v, ok := r.venueByID[id]
	if !ok {
		return nil, fmt.Errorf("venue %d: %w", id, ErrNotFound)
	}
	return v, nil
}

func (r *Registry) Venues() []*model.Venue { return clone(r.venues) }

func (r *Registry) AddMatch(m *model.Match) error {
	if _, ok := r.matchByID[m.ID]; ok {
		return fmt.Errorf("match %q: %w", m.ID, ErrConflict)
	}
	r.matchByID[m.ID] = m
	r.matches = append(r.matches, m)
	return nil
}

func (r *Registry) Match(id string) (*model.Match, error) {
	m, ok := r.matchByID[id]
	if !ok {
		return nil, fmt.Errorf("match %q: %w", id, ErrNotFound)
	}
	return m, nil
}

func (r *Registry) Matches() []*model.Match { return clone(r.matches) }

// AddCustomer registers a customer. Identifiers are unique.
func (r *Registry) AddCustomer(c *model.Customer) error {
	if _, ok := r.customerByID[c.ID]; ok {
		return fmt.Errorf("customer %q: %w", c.ID, ErrConflict)
	}
	r.customerByID[c.ID] = c
	r.customers = append(r.customers, c)
	return nil
}

func (r *Registry) Customer(id string) (*model.Customer, error) {
	c, ok := r.customerByID[id]
	if !ok {
		return nil, fmt.Errorf("customer %q: %w", id, ErrNotFound)
	}
	return c, nil
}

func (r *Registry) Customers() []*model.Customer { return clone(r.customers) }

// NextTicketID is one past the highest ticket identifier, so restored
// snapshots with gaps never collide.
func (r *Registry) NextTicketID() int {
	next := 1
	for id := range r.ticketByID {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func (r *Registry) AddTicket(t *model.Ticket) error {
	if _, ok := r.ticketByID[t.ID]; ok {
		return fmt.Errorf("ticket %d: %w", t.ID, ErrConflict)
	}
	r.ticketByID[t.ID] = t
	r.tickets = append(r.tickets, t)
	return nil
}

func (r *Registry) Ticket(id int) (*model.Ticket, error) {
	t, ok := r.ticketByID[id]
	if !ok {
		return nil, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
	}
	return t, nil
}

// TicketByInput parses a ticket identifier typed by a user.
func (r *Registry) TicketByInput(input string) (*model.Ticket, error) {
	id, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("ticket %q: %w", input, ErrNotFound)
	}
	return r.Ticket(id)
}

func (r *Registry) Tickets() []*model.Ticket { return clone(r.tickets) }

// TicketsFor returns the customer's tickets in issuance order.
func (r *Registry) TicketsFor(customerID string) []*model.Ticket {
	var out []*model.Ticket
	for _, t := range r.tickets {
		if t.Customer.ID == customerID {
			out = append(out, t)
		}
	}
	return out
}

// TicketsForMatch returns every ticket sold for a match.
func (r *Registry) TicketsForMatch(matchID string) []*model.Ticket {
	var out []*model.Ticket
	for _, t := range r.tickets {
		if t.Match.ID == matchID {
			out = append(out, t)
		}
	}
	return out
}

func (r *Registry) AddInvoice(inv *model.Invoice) {
	r.invoices = append(r.invoices, inv)
}

func (r *Registry) Invoices() []*model.Invoice { return clone(r.invoices) }

// InvoicesFor returns the customer's invoices in creation order.
func (r *Registry) InvoicesFor(customerID string) []*model.Invoice {
	var out []*model.Invoice
	for _, inv := range r.invoices {
		if inv.Customer.ID == customerID {
			out = append(out, inv)
		}
	}
	return out
}

// Products flattens the catalogues of every venue in venue order.
func (r *Registry) Products() []*inventory.Product {
	var out []*inventory.Product
	for _, v := range r.venues {
		out = append(out, v.Products()...)
	}
	return out
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
