package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-simulator/internal/config"
	"github.com/iliyamo/venue-simulator/internal/inventory"
	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/repository"
	"github.com/iliyamo/venue-simulator/internal/reservation"
)

func seeded(t *testing.T) *repository.Registry {
	t.Helper()
	reg := repository.NewRegistry()
	home := &model.Team{ID: "t1", Code: "GER", Name: "Germany", Group: "A"}
	away := &model.Team{ID: "t2", Code: "SCO", Name: "Scotland", Group: "A"}
	require.NoError(t, reg.AddTeam(home))
	require.NoError(t, reg.AddTeam(away))

	beer, err := inventory.NewProduct("Beer", "500ml", decimal.RequireFromString("5.80"), 8, inventory.VariantAlcoholic)
	require.NoError(t, err)
	bar, err := inventory.NewCatalogue(beer)
	require.NoError(t, err)
	venue := model.NewVenue(1, "Allianz Arena", "Munich", 12, 5, []*model.Stand{model.NewStand("Bar", bar)})
	require.NoError(t, reg.AddVenue(venue))

	match := &model.Match{ID: "m1", Number: 1, Home: home, Away: away, Date: "2024-06-14", Group: "A", Venue: venue}
	require.NoError(t, reg.AddMatch(match))

	alice := &model.Customer{Name: "Alice", ID: "123456", Age: 30}
	require.NoError(t, reg.AddCustomer(alice))

	venue.VIP.Occupy(0, 2)
	require.NoError(t, reg.AddTicket(&model.Ticket{
		ID:            1,
		Customer:      alice,
		Match:         match,
		Zone:          model.ZoneVIP,
		Seat:          reservation.Coordinate{Row: 1, Seat: 3},
		Subtotal:      decimal.NewFromInt(100),
		Discount:      decimal.Zero,
		AfterDiscount: decimal.NewFromInt(100),
		Tax:           decimal.NewFromInt(16),
		Total:         decimal.NewFromInt(116),
		Attended:      true,
	}))
	reg.AddInvoice(&model.Invoice{
		Customer: alice,
		Match:    match,
		Stand:    venue.Stands[0],
		Lines:    []model.InvoiceLine{{Product: beer, Quantity: 2}},
		Subtotal: decimal.RequireFromString("11.6"),
		Discount: decimal.Zero,
		Tax:      decimal.RequireFromString("1.856"),
		Total:    decimal.RequireFromString("13.456"),
	})
	return reg
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save(ctx, Capture(seeded(t))))
	snap, err := store.Load(ctx)
	require.NoError(t, err)

	reg := repository.NewRegistry()
	require.NoError(t, Restore(snap, reg))

	assert.Len(t, reg.Teams(), 2)
	assert.Len(t, reg.Customers(), 1)
	venue, err := reg.Venue(1)
	require.NoError(t, err)
	assert.True(t, venue.VIP.IsSeatOccupied(0, 2), "ticket seat is occupied again")
	assert.Equal(t, 1, venue.VIP.OccupiedCount())
	assert.Equal(t, 0, venue.General.OccupiedCount())

	ticket, err := reg.Ticket(1)
	require.NoError(t, err)
	assert.True(t, ticket.Attended)
	assert.True(t, decimal.NewFromInt(116).Equal(ticket.Total))
	assert.Equal(t, 2, reg.NextTicketID())

	invoices := reg.Invoices()
	require.Len(t, invoices, 1)
	beer, err := venue.Stands[0].Catalogue.Lookup("Beer")
	require.NoError(t, err)
	assert.Same(t, beer, invoices[0].Lines[0].Product, "invoice lines point at catalogue products")
	assert.Equal(t, 8, beer.Stock)
	assert.True(t, decimal.RequireFromString("13.456").Equal(invoices[0].Total))
}

func TestFileStoreEmptyDir(t *testing.T) {
	_, err := NewFileStore(t.TempDir()).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestRestoreRejectsDoubleSoldSeat(t *testing.T) {
	snap := Capture(seeded(t))
	dup := snap.Tickets[0]
	dup.ID = 2
	snap.Tickets = append(snap.Tickets, dup)

	err := Restore(snap, repository.NewRegistry())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestRestoreRejectsSeatOutsideGrid(t *testing.T) {
	snap := Capture(seeded(t))
	snap.Tickets[0].Seat = "9, 1"

	err := Restore(snap, repository.NewRegistry())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestRestoreRejectsDanglingReference(t *testing.T) {
	snap := Capture(seeded(t))
	snap.Matches[0].VenueID = 42

	err := Restore(snap, repository.NewRegistry())
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(map[string][]byte{KindTeams: []byte("{not json")})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestOpenDefaultsToFileStore(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Kind: config.StoreFile, Dir: t.TempDir()}}
	store, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn() //nolint:errcheck
	assert.IsType(t, &FileStore{}, store)
}
