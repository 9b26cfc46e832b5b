package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-simulator/internal/handler"
	"github.com/iliyamo/venue-simulator/internal/inventory"
	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/persistence"
	"github.com/iliyamo/venue-simulator/internal/repository"
	"github.com/iliyamo/venue-simulator/internal/reservation"
)

func savedStore(t *testing.T) persistence.Store {
	t.Helper()
	reg := repository.NewRegistry()
	home := &model.Team{ID: "t1", Name: "Germany"}
	away := &model.Team{ID: "t2", Name: "Scotland"}
	require.NoError(t, reg.AddTeam(home))
	require.NoError(t, reg.AddTeam(away))
	beer, err := inventory.NewProduct("Beer", "500ml", decimal.RequireFromString("5.80"), 10, inventory.VariantAlcoholic)
	require.NoError(t, err)
	bar, err := inventory.NewCatalogue(beer)
	require.NoError(t, err)
	venue := model.NewVenue(1, "Allianz Arena", "Munich", 12, 5, []*model.Stand{model.NewStand("Bar", bar)})
	require.NoError(t, reg.AddVenue(venue))
	match := &model.Match{ID: "m1", Home: home, Away: away, Date: "2024-06-14", Venue: venue}
	require.NoError(t, reg.AddMatch(match))
	alice := &model.Customer{Name: "Alice", ID: "123456", Age: 30}
	require.NoError(t, reg.AddCustomer(alice))

	venue.VIP.Occupy(0, 1)
	require.NoError(t, reg.AddTicket(&model.Ticket{
		ID: 1, Customer: alice, Match: match, Zone: model.ZoneVIP,
		Seat:  reservation.Coordinate{Row: 1, Seat: 2},
		Total: decimal.NewFromInt(87), Attended: true,
	}))
	reg.AddInvoice(&model.Invoice{
		Customer: alice, Match: match, Stand: venue.Stands[0],
		Lines: []model.InvoiceLine{{Product: beer, Quantity: 3}},
		Total: decimal.NewFromInt(13),
	})

	store := persistence.NewFileStore(t.TempDir())
	require.NoError(t, store.Save(context.Background(), persistence.Capture(reg)))
	return store
}

func newServer(store persistence.Store) *echo.Echo {
	e := echo.New()
	RegisterRoutes(e)
	RegisterReports(e, handler.NewReportHandler(store, nil))
	return e
}

func get(t *testing.T, e *echo.Echo, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, _ := get(t, newServer(persistence.NewFileStore(t.TempDir())), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestReportsWithoutSnapshot(t *testing.T) {
	rec, body := get(t, newServer(persistence.NewFileStore(t.TempDir())), "/v1/venues")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no saved data", body["error"])
}

func TestListVenues(t *testing.T) {
	rec, body := get(t, newServer(savedStore(t)), "/v1/venues")
	require.Equal(t, http.StatusOK, rec.Code)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	v := items[0].(map[string]any)
	assert.Equal(t, "Allianz Arena", v["name"])
	assert.EqualValues(t, 5, v["vip_capacity"])
	assert.EqualValues(t, 1, v["vip_occupied"], "seat of the saved ticket is occupied again")
	assert.EqualValues(t, 0, v["general_occupied"])
}

func TestVenueSeats(t *testing.T) {
	e := newServer(savedStore(t))

	rec, body := get(t, e, "/v1/venues/1/seats?zone=vip")
	require.Equal(t, http.StatusOK, rec.Code)
	zones := body["zones"].([]any)
	require.Len(t, zones, 1)
	rows := zones[0].(map[string]any)["rows"].([]any)
	require.Len(t, rows, 1)
	seats := rows[0].([]any)
	require.Len(t, seats, 5)
	assert.Equal(t, true, seats[1].(map[string]any)["occupied"])
	assert.Equal(t, false, seats[0].(map[string]any)["occupied"])

	rec, body = get(t, e, "/v1/venues/1/seats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["zones"].([]any), 2)

	rec, _ = get(t, e, "/v1/venues/9/seats")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = get(t, e, "/v1/venues/abc/seats")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = get(t, e, "/v1/venues/1/seats?zone=box")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReports(t *testing.T) {
	e := newServer(savedStore(t))

	rec, body := get(t, e, "/v1/reports/attendance")
	require.Equal(t, http.StatusOK, rec.Code)
	row := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "Germany vs Scotland", row["match"])
	assert.EqualValues(t, 1, row["sold"])
	assert.EqualValues(t, 1, row["attended"])
	assert.Contains(t, body, "most_attended")

	rec, body = get(t, e, "/v1/reports/top-products")
	require.Equal(t, http.StatusOK, rec.Code)
	p := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "Beer", p["name"])
	assert.EqualValues(t, 3, p["units_sold"])

	rec, body = get(t, e, "/v1/reports/top-customers")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "123456", body["items"].([]any)[0].(map[string]any)["id"])

	rec, body = get(t, e, "/v1/reports/vip-average")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["customers"])
	assert.Equal(t, "100", body["average"])
}
