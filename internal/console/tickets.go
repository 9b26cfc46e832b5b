package console

import (
	"context"
	"errors"

	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/reservation"
	"github.com/iliyamo/venue-simulator/internal/seatgrid"
)

func (c *Console) ticketsMenu(ctx context.Context) error {
	for {
		c.banner("TICKET SALES")
		c.println("1. Register customer\n2. Registered customer\n3. Back")
		opt, err := c.choose("Choose an option: ", 3)
		if err != nil {
			return err
		}
		var cust *model.Customer
		switch opt {
		case 1:
			cust, err = c.register(ctx)
		case 2:
			cust, err = c.identify(ctx)
		case 3:
			return nil
		}
		if err != nil {
			return err
		}
		if cust == nil {
			continue
		}
		c.printf("\nCustomer:\n%s", cust.Describe())
		if err := c.sellTicket(ctx, cust); err != nil {
			return err
		}
	}
}

func (c *Console) sellTicket(ctx context.Context, cust *model.Customer) error {
	matches := c.reg.Matches()
	if len(matches) == 0 {
		c.println("\nNo matches loaded.")
		return nil
	}
	c.println("")
	for i, m := range matches {
		c.printf("%d.\n%s", i+1, m.Describe())
	}
	opt, err := c.choose("Match number: ", len(matches))
	if err != nil {
		return err
	}
	match := matches[opt-1]

	c.println("1. General\n2. VIP")
	opt, err = c.choose("Ticket type: ", 2)
	if err != nil {
		return err
	}
	zone := model.Zones[opt-1]
	grid := match.Venue.Grid(zone)
	if grid.OccupiedCount() == grid.Capacity() {
		c.printf("\nNo %s seats left at %s.\n", zone, match.Venue.Name)
		return nil
	}

	c.printf("\n%s", grid.Render(string(zone)+" seats at "+match.Venue.Name))
	row, seat, err := c.pickSeat(grid)
	if err != nil {
		return err
	}

	pending, err := c.desks.Tickets.Begin(ctx, cust.ID, match.ID, zone, row, seat)
	if err != nil {
		c.printf("\nCould not hold the seat: %v\n", err)
		return nil
	}
	if pending.Quote.Discounted() {
		c.println("\nThe customer ID is a vampire number: 50% discount applied.")
	} else {
		c.println("\nThe customer ID is not a vampire number: no discount.")
	}
	q := pending.Quote
	c.banner("PAYMENT SUMMARY")
	c.printf("Name: %s\nID: %s\nRow: %d, Seat: %d\nSubtotal: $%s\nDiscount: -$%s\nAfter discount: $%s\nTax: +$%s\nTotal: $%s\n",
		cust.Name, cust.ID, row, seat,
		money(q.Subtotal), money(q.Discount), money(q.AfterDiscount), money(q.Tax), money(q.Total))

	c.println("\n1. Complete purchase\n2. Cancel")
	opt, err = c.choose("Choose an option: ", 2)
	if err != nil {
		if aerr := pending.Abandon(ctx); aerr != nil {
			c.log.Error(ctx, "release held seat", aerr)
		}
		return err
	}
	if opt == 2 {
		if err := pending.Abandon(ctx); err != nil {
			return err
		}
		c.println("\nPurchase abandoned; the seat is free again.")
		return nil
	}
	t, err := pending.Confirm(ctx)
	if err != nil {
		c.log.Error(ctx, "issue ticket", err)
		c.println("\nThe ticket could not be issued; the seat is free again.")
		return nil
	}
	c.printf("\nTicket %d purchased.\n", t.ID)
	return nil
}

// pickSeat re-prompts for a row with a free seat and then for a free seat
// in it.
func (c *Console) pickSeat(grid *seatgrid.Grid) (row, seat int, err error) {
	for {
		s, err := c.ask("Row: ")
		if err != nil {
			return 0, 0, err
		}
		row, err = reservation.ValidateRow(grid, s)
		if err == nil {
			break
		}
		c.println(seatProblem(err))
	}
	for {
		s, err := c.ask("Seat: ")
		if err != nil {
			return 0, 0, err
		}
		seat, err = reservation.ValidateSeat(grid, row, s)
		if err == nil {
			return row, seat, nil
		}
		c.println(seatProblem(err))
	}
}

func seatProblem(err error) string {
	switch {
	case errors.Is(err, reservation.ErrRowFull):
		return "That row is full, choose another one."
	case errors.Is(err, reservation.ErrSeatOccupied):
		return "That seat is taken, choose another one."
	case errors.Is(err, reservation.ErrRowOutOfRange), errors.Is(err, reservation.ErrSeatOutOfRange):
		return "Out of range: " + err.Error()
	}
	return "Enter a positive whole number."
}
