package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/repository"
)

// AttendanceDesk lets ticket holders in.
type AttendanceDesk struct {
	deps Deps
}

func NewAttendanceDesk(d Deps) *AttendanceDesk {
	return &AttendanceDesk{deps: d.withDefaults()}
}

// Confirm marks the ticket as attended. The ticket must belong to the
// customer; a second confirmation returns model.ErrAlreadyAttended.
func (d *AttendanceDesk) Confirm(ctx context.Context, customerID string, ticketID int) (*model.Ticket, error) {
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
	if err := t.MarkAttended(); err != nil {
		return nil, err
	}
	d.deps.Log.Info(d.deps.Log.WithFields(ctx, map[string]any{"ticket_id": t.ID, "customer_id": customer.ID}), "attendance confirmed")
	return t, nil
}
