package persistence

import (
	"fmt"

	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/repository"
)

// Restore loads the snapshot into reg, which should be empty. Records are
// validated and cross references resolved; any failure is reported as
// ErrCorrupt and leaves reg partially filled.
func Restore(s *Snapshot, reg *repository.Registry) error {
	for _, r := range s.Teams {
		if err := check(r, "team "+r.ID); err != nil {
			return err
		}
		if err := reg.AddTeam(model.TeamFromRecord(r)); err != nil {
			return corrupt(err)
		}
	}
	for _, r := range s.Venues {
		if err := check(r, fmt.Sprintf("venue %d", r.ID)); err != nil {
			return err
		}
		v, err := model.VenueFromRecord(r)
		if err != nil {
			return corrupt(err)
		}
		if err := reg.AddVenue(v); err != nil {
			return corrupt(err)
		}
	}
	for _, r := range s.Matches {
		if err := check(r, "match "+r.ID); err != nil {
			return err
		}
		home, err := reg.Team(r.HomeID)
		if err != nil {
			return corrupt(err)
		}
		away, err := reg.Team(r.AwayID)
		if err != nil {
			return corrupt(err)
		}
		venue, err := reg.Venue(r.VenueID)
		if err != nil {
			return corrupt(err)
		}
		if err := reg.AddMatch(model.MatchFromRecord(r, home, away, venue)); err != nil {
			return corrupt(err)
		}
	}
	for _, r := range s.Customers {
		if err := check(r, "customer "+r.ID); err != nil {
			return err
		}
		if err := reg.AddCustomer(model.CustomerFromRecord(r)); err != nil {
			return corrupt(err)
		}
	}
	for _, r := range s.Tickets {
		if err := restoreTicket(reg, r); err != nil {
			return err
		}
	}
	for _, r := range s.Invoices {
		if err := check(r, "invoice for "+r.CustomerID); err != nil {
			return err
		}
		customer, err := reg.Customer(r.CustomerID)
		if err != nil {
			return corrupt(err)
		}
		match, err := reg.Match(r.MatchID)
		if err != nil {
			return corrupt(err)
		}
		stand, ok := match.Venue.StandByName(r.Stand)
		if !ok {
			return fmt.Errorf("%w: invoice stand %q not in venue %q", ErrCorrupt, r.Stand, match.Venue.Name)
		}
		inv, err := model.InvoiceFromRecord(r, customer, match, stand)
		if err != nil {
			return corrupt(err)
		}
		reg.AddInvoice(inv)
	}
	return nil
}

// restoreTicket registers the ticket and occupies its seat again.
func restoreTicket(reg *repository.Registry, r model.TicketRecord) error {
	if err := check(r, fmt.Sprintf("ticket %d", r.ID)); err != nil {
		return err
	}
	customer, err := reg.Customer(r.CustomerID)
	if err != nil {
		return corrupt(err)
	}
	match, err := reg.Match(r.MatchID)
	if err != nil {
		return corrupt(err)
	}
	t, err := model.TicketFromRecord(r, customer, match)
	if err != nil {
		return corrupt(err)
	}
	grid := match.Venue.Grid(t.Zone)
	row, seat := t.Seat.Row-1, t.Seat.Seat-1
	if row < 0 || seat < 0 || row >= grid.Rows() || seat >= grid.RowWidth(row) {
		return fmt.Errorf("%w: ticket %d seat (%s) outside %s grid", ErrCorrupt, t.ID, t.Seat, t.Zone)
	}
	if grid.IsSeatOccupied(row, seat) {
		return fmt.Errorf("%w: ticket %d seat (%s) sold twice", ErrCorrupt, t.ID, t.Seat)
	}
	grid.Occupy(row, seat)
	if err := reg.AddTicket(t); err != nil {
		return corrupt(err)
	}
	return nil
}

func check(v any, what string) error {
	if err := model.Validate(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, what, err)
	}
	return nil
}

func corrupt(err error) error {
	return fmt.Errorf("%w: %w", ErrCorrupt, err)
}
