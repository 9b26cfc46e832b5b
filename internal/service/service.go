// Package service holds the sale desks the console drives: customer
// registration, ticket sales, attendance and concession sales. Desks work
// on the shared registry and publish sale events; a failed publish is
// logged and never undoes a sale.
package service

import (
	"context"
	"errors"

	"github.com/iliyamo/venue-simulator/internal/logger"
	"github.com/iliyamo/venue-simulator/internal/queue"
	"github.com/iliyamo/venue-simulator/internal/repository"
)

var (
	// ErrNotAttended is returned when a concession purchase is attempted
	// with a ticket whose attendance was never confirmed.
	ErrNotAttended = errors.New("ticket attendance not confirmed")
	ErrNoStock     = errors.New("nothing left to sell")
	ErrEmptyCart   = errors.New("cart is empty")
	ErrClosed      = errors.New("session already settled")
)

// Deps are the collaborators every desk shares.
type Deps struct {
	Registry  *repository.Registry
	Publisher queue.Publisher
	Log       *logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Publisher == nil {
		d.Publisher = queue.NopPublisher{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}

// publish sends an event and swallows the error after logging it.
func (d Deps) publish(ctx context.Context, e queue.Envelope) {
	if err := d.Publisher.Publish(ctx, e); err != nil {
		d.Log.Error(d.Log.WithFields(ctx, map[string]any{"event_id": e.ID, "event_type": e.Type}), "publish sale event", err)
	}
}

// Desks groups one of each desk over the same dependencies.
type Desks struct {
	Registrar  *Registrar
	Tickets    *TicketDesk
	Attendance *AttendanceDesk
	Concession *ConcessionDesk
}

func NewDesks(d Deps) *Desks {
	return &Desks{
		Registrar:  NewRegistrar(d),
		Tickets:    NewTicketDesk(d),
		Attendance: NewAttendanceDesk(d),
		Concession: NewConcessionDesk(d),
	}
}
