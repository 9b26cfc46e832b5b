package console

import (
	"context"

	"github.com/iliyamo/venue-simulator/internal/model"
)

func (c *Console) attendanceMenu(ctx context.Context) error {
	for {
		c.banner("ATTENDANCE")
		c.println("1. Confirm attendance\n2. Back")
		opt, err := c.choose("Choose an option: ", 2)
		if err != nil || opt == 2 {
			return err
		}
		if err := c.confirmAttendance(ctx); err != nil {
			return err
		}
	}
}

func (c *Console) confirmAttendance(ctx context.Context) error {
	cust, err := c.identify(ctx)
	if err != nil || cust == nil {
		return err
	}
	var pending []*model.Ticket
	for _, t := range c.reg.TicketsFor(cust.ID) {
		if !t.Attended {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		c.println("\nThe customer has no tickets waiting for confirmation.")
		return nil
	}
	c.println("")
	for _, t := range pending {
		c.println(t.Describe())
	}
	t, err := c.pickTicket("Ticket ID to confirm: ", pending)
	if err != nil {
		return err
	}
	if _, err := c.desks.Attendance.Confirm(ctx, cust.ID, t.ID); err != nil {
		c.printf("\nCould not confirm: %v\n", err)
		return nil
	}
	c.printf("\nAttendance confirmed for ticket %d.\n", t.ID)
	return nil
}

// pickTicket re-prompts until the answer is the ID of one of candidates.
func (c *Console) pickTicket(label string, candidates []*model.Ticket) (*model.Ticket, error) {
	for {
		s, err := c.ask(label)
		if err != nil {
			return nil, err
		}
		if t, err := c.reg.TicketByInput(s); err == nil {
			for _, cand := range candidates {
				if cand == t {
					return t, nil
				}
			}
		}
		c.println("Invalid ticket ID.")
	}
}
