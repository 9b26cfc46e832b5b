package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-simulator/internal/inventory"
	"github.com/iliyamo/venue-simulator/internal/logger"
	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/queue"
	"github.com/iliyamo/venue-simulator/internal/repository"
	"github.com/iliyamo/venue-simulator/internal/reservation"
)

type recordingPublisher struct {
	events []queue.Envelope
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e queue.Envelope) error {
	p.events = append(p.events, e)
	return p.err
}

type fixture struct {
	reg   *repository.Registry
	pub   *recordingPublisher
	desks *Desks
	venue *model.Venue
	beer  *inventory.Product
	chips *inventory.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := repository.NewRegistry()
	home := &model.Team{ID: "t1", Name: "Germany"}
	away := &model.Team{ID: "t2", Name: "Scotland"}
	require.NoError(t, reg.AddTeam(home))
	require.NoError(t, reg.AddTeam(away))

	beer, err := inventory.NewProduct("Beer", "500ml", decimal.RequireFromString("5.80"), 10, inventory.VariantAlcoholic)
	require.NoError(t, err)
	chips, err := inventory.NewProduct("Chips", "1", decimal.RequireFromString("2.32"), 1, inventory.VariantPackage)
	require.NoError(t, err)
	bar, err := inventory.NewCatalogue(beer, chips)
	require.NoError(t, err)
	empty, err := inventory.NewCatalogue()
	require.NoError(t, err)

	venue := model.NewVenue(1, "Allianz Arena", "Munich", 12, 5, []*model.Stand{
		model.NewStand("Bar", bar),
		model.NewStand("Closed Kiosk", empty),
	})
	require.NoError(t, reg.AddVenue(venue))
	require.NoError(t, reg.AddMatch(&model.Match{ID: "m1", Home: home, Away: away, Date: "2024-06-14", Venue: venue}))

	pub := &recordingPublisher{}
	return &fixture{
		reg:   reg,
		pub:   pub,
		desks: NewDesks(Deps{Registry: reg, Publisher: pub, Log: logger.Nop()}),
		venue: venue,
		beer:  beer,
		chips: chips,
	}
}

func (f *fixture) register(t *testing.T, name, id string) *model.Customer {
	t.Helper()
	c, err := f.desks.Registrar.Register(context.Background(), name, id, 30)
	require.NoError(t, err)
	return c
}

func (f *fixture) buy(t *testing.T, customerID string, zone model.Zone, row, seat int) *model.Ticket {
	t.Helper()
	p, err := f.desks.Tickets.Begin(context.Background(), customerID, "m1", zone, row, seat)
	require.NoError(t, err)
	tk, err := p.Confirm(context.Background())
	require.NoError(t, err)
	return tk
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	c := f.register(t, " Ana ", "126000")
	assert.Equal(t, "Ana", c.Name)

	_, err := f.desks.Registrar.Register(context.Background(), "Bob", "126000", 40)
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = f.desks.Registrar.Register(context.Background(), "B0b", "12", 0)
	require.ErrorIs(t, err, model.ErrInvalid)
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)
	assert.Len(t, f.reg.Customers(), 1)
}

func TestTicketSaleConfirm(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ana", "125460")

	p, err := f.desks.Tickets.Begin(context.Background(), "125460", "m1", model.ZoneGeneral, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, reservation.Coordinate{Row: 2, Seat: 1}, p.Seat())
	assert.True(t, f.venue.General.IsSeatOccupied(1, 0), "seat is held before confirmation")
	assert.True(t, p.Quote.Total.Equal(decimal.RequireFromString("20.3")))

	tk, err := p.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tk.ID)
	assert.True(t, tk.Discount.Equal(decimal.RequireFromString("17.5")))
	assert.False(t, tk.Attended)
	assert.False(t, f.venue.General.IsRowFull(1))

	require.Len(t, f.pub.events, 1)
	ev := f.pub.events[0]
	assert.Equal(t, queue.TypeTicketIssued, ev.Type)
	assert.Equal(t, "2, 1", ev.Ticket.Seat)
	assert.Equal(t, "20.30", ev.Ticket.Total)

	assert.ErrorIs(t, p.Abandon(context.Background()), reservation.ErrHoldSettled)
	assert.True(t, f.venue.General.IsSeatOccupied(1, 0))

	tk2 := f.buy(t, "125460", model.ZoneVIP, 1, 1)
	assert.Equal(t, 2, tk2.ID)
}

func TestTicketSaleAbandonReleasesSeat(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Bob", "999999")

	p, err := f.desks.Tickets.Begin(context.Background(), "999999", "m1", model.ZoneVIP, 1, 5)
	require.NoError(t, err)
	assert.True(t, p.Quote.Total.Equal(decimal.NewFromInt(87)))
	require.NoError(t, p.Abandon(context.Background()))

	cell := f.venue.VIP.Cell(0, 4)
	assert.False(t, f.venue.VIP.IsSeatOccupied(0, 4))
	assert.Equal(t, 5, cell.Label)
	assert.Empty(t, f.reg.Tickets())
	assert.Empty(t, f.pub.events)

	_, err = p.Confirm(context.Background())
	assert.ErrorIs(t, err, reservation.ErrHoldSettled)
}

func TestTicketIDsSkipRestoredGaps(t *testing.T) {
	f := newFixture(t)
	ana := f.register(t, "Ana", "125460")
	m, err := f.reg.Match("m1")
	require.NoError(t, err)
	require.NoError(t, f.reg.AddTicket(&model.Ticket{ID: 2, Customer: ana, Match: m, Zone: model.ZoneGeneral, Seat: reservation.Coordinate{Row: 3, Seat: 1}}))

	p, err := f.desks.Tickets.Begin(context.Background(), "125460", "m1", model.ZoneGeneral, 1, 1)
	require.NoError(t, err)
	tk, err := p.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, tk.ID)
	assert.True(t, f.venue.General.IsSeatOccupied(0, 0))
	assert.Len(t, f.reg.Tickets(), 2)

	p, err = f.desks.Tickets.Begin(context.Background(), "125460", "m1", model.ZoneGeneral, 1, 2)
	require.NoError(t, err)
	require.NoError(t, p.Abandon(context.Background()))
	assert.False(t, f.venue.General.IsSeatOccupied(0, 1))
	assert.Len(t, f.reg.Tickets(), 2)
}

func TestTicketSaleRejections(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Bob", "999999")
	ctx := context.Background()

	_, err := f.desks.Tickets.Begin(ctx, "000000", "m1", model.ZoneGeneral, 1, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.desks.Tickets.Begin(ctx, "999999", "m9", model.ZoneGeneral, 1, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.desks.Tickets.Begin(ctx, "999999", "m1", model.ZoneGeneral, 3, 1)
	assert.ErrorIs(t, err, reservation.ErrRowOutOfRange)
	_, err = f.desks.Tickets.Begin(ctx, "999999", "m1", model.ZoneGeneral, 2, 3)
	assert.ErrorIs(t, err, reservation.ErrSeatOutOfRange)

	f.buy(t, "999999", model.ZoneGeneral, 2, 1)
	_, err = f.desks.Tickets.Begin(ctx, "999999", "m1", model.ZoneGeneral, 2, 1)
	assert.ErrorIs(t, err, reservation.ErrSeatOccupied)
	f.buy(t, "999999", model.ZoneGeneral, 2, 2)
	_, err = f.desks.Tickets.Begin(ctx, "999999", "m1", model.ZoneGeneral, 2, 1)
	assert.ErrorIs(t, err, reservation.ErrRowFull)
}

func TestPublishFailureDoesNotAbortSale(t *testing.T) {
	f := newFixture(t)
	buf := &bytes.Buffer{}
	f.pub.err = errors.New("broker down")
	desks := NewDesks(Deps{Registry: f.reg, Publisher: f.pub, Log: logger.New(logger.Options{ServiceName: "test", Output: buf})})
	_, err := desks.Registrar.Register(context.Background(), "Ana", "123456", 20)
	require.NoError(t, err)

	p, err := desks.Tickets.Begin(context.Background(), "123456", "m1", model.ZoneGeneral, 1, 1)
	require.NoError(t, err)
	tk, err := p.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tk.ID)
	assert.Len(t, f.reg.Tickets(), 1)
	assert.Contains(t, buf.String(), "broker down")
}

func TestAttendance(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ana", "123456")
	f.register(t, "Bob", "654321")
	tk := f.buy(t, "123456", model.ZoneGeneral, 1, 1)
	ctx := context.Background()

	_, err := f.desks.Attendance.Confirm(ctx, "654321", tk.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	_, err = f.desks.Attendance.Confirm(ctx, "123456", 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := f.desks.Attendance.Confirm(ctx, "123456", tk.ID)
	require.NoError(t, err)
	assert.True(t, got.Attended)

	_, err = f.desks.Attendance.Confirm(ctx, "123456", tk.ID)
	assert.ErrorIs(t, err, model.ErrAlreadyAttended)
}

func TestConcessionRequiresAttendance(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ana", "123456")
	f.register(t, "Bob", "654321")
	tk := f.buy(t, "123456", model.ZoneGeneral, 1, 1)
	ctx := context.Background()

	_, err := f.desks.Concession.Open(ctx, "123456", tk.ID, 0)
	assert.ErrorIs(t, err, ErrNotAttended)
	assert.Empty(t, f.desks.Concession.AttendedTickets("123456"))

	_, err = f.desks.Attendance.Confirm(ctx, "123456", tk.ID)
	require.NoError(t, err)
	assert.Len(t, f.desks.Concession.AttendedTickets("123456"), 1)

	_, err = f.desks.Concession.Open(ctx, "654321", tk.ID, 0)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	_, err = f.desks.Concession.Open(ctx, "123456", tk.ID, 1)
	assert.ErrorIs(t, err, ErrNoStock)
	_, err = f.desks.Concession.Open(ctx, "123456", tk.ID, 5)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConcessionCheckoutWithPerfectDiscount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "Ana", "33550336")
	tk := f.buy(t, "33550336", model.ZoneGeneral, 1, 1)
	_, err := f.desks.Attendance.Confirm(ctx, "33550336", tk.ID)
	require.NoError(t, err)

	s, err := f.desks.Concession.Open(ctx, "33550336", tk.ID, 0)
	require.NoError(t, err)
	assert.Len(t, s.Available(), 2)

	require.NoError(t, s.Add("Beer", 1))
	require.NoError(t, s.Add("Beer", 1))
	assert.ErrorIs(t, s.Add("Wine", 1), inventory.ErrProductNotFound)
	assert.ErrorIs(t, s.Add("Beer", 0), inventory.ErrInvalidQuantity)
	assert.Equal(t, 1, s.Cart().Len())

	receipt, err := s.Checkout(ctx)
	require.NoError(t, err)
	inv := receipt.Invoice
	// 2 x 5.80 = 11.60; 15% off = 1.74; 9.86 taxed 16% = 1.5776; total 11.4376
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("11.6")))
	assert.True(t, inv.Discount.Equal(decimal.RequireFromString("1.74")))
	assert.True(t, inv.Tax.Equal(decimal.RequireFromString("1.5776")))
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("11.4376")))
	assert.Equal(t, 2, inv.QuantityOf("Beer"))
	assert.Equal(t, 8, f.beer.Stock)
	assert.Equal(t, 1, f.chips.Stock)
	assert.Len(t, f.reg.Invoices(), 1)

	last := f.pub.events[len(f.pub.events)-1]
	assert.Equal(t, queue.TypeInvoiceIssued, last.Type)
	assert.Equal(t, []queue.InvoiceLine{{Product: "Beer", Quantity: 2}}, last.Invoice.Lines)

	_, err = s.Checkout(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConcessionCheckoutRejectsOverdrawnLine(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ana", "123456")
	ctx := context.Background()
	tk := f.buy(t, "123456", model.ZoneGeneral, 1, 1)
	_, err := f.desks.Attendance.Confirm(ctx, "123456", tk.ID)
	require.NoError(t, err)

	s, err := f.desks.Concession.Open(ctx, "123456", tk.ID, 0)
	require.NoError(t, err)
	_, err = s.Checkout(ctx)
	assert.ErrorIs(t, err, ErrEmptyCart)

	require.NoError(t, s.Add("Chips", 3))
	require.NoError(t, s.Add("Beer", 1))
	receipt, err := s.Checkout(ctx)
	require.NoError(t, err)
	require.Len(t, receipt.Rejected, 1)
	assert.Equal(t, "Chips", receipt.Rejected[0].Product.Name)
	assert.Equal(t, 1, f.chips.Stock)
	assert.Equal(t, 9, f.beer.Stock)
	assert.True(t, receipt.Invoice.Subtotal.Equal(decimal.RequireFromString("5.8")))
	assert.False(t, receipt.Quote.Discounted())
}

func TestConcessionCheckoutNothingCommitted(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ana", "123456")
	ctx := context.Background()
	tk := f.buy(t, "123456", model.ZoneGeneral, 1, 1)
	_, err := f.desks.Attendance.Confirm(ctx, "123456", tk.ID)
	require.NoError(t, err)

	s, err := f.desks.Concession.Open(ctx, "123456", tk.ID, 0)
	require.NoError(t, err)
	require.NoError(t, s.Add("Chips", 2))
	receipt, err := s.Checkout(ctx)
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	require.NotNil(t, receipt)
	assert.Len(t, receipt.Rejected, 1)
	assert.Empty(t, f.reg.Invoices())
}
