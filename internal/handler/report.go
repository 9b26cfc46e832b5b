// Package handler exposes the read-only report API. Every request works on
// its own registry restored from the last saved snapshot, so handlers
// never share mutable state.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-simulator/internal/logger"
	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/persistence"
	"github.com/iliyamo/venue-simulator/internal/report"
	"github.com/iliyamo/venue-simulator/internal/repository"
)

// ReportHandler serves venues, seat maps and indicators.
type ReportHandler struct {
	Store persistence.Store
	Log   *logger.Logger
}

func NewReportHandler(store persistence.Store, log *logger.Logger) *ReportHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportHandler{Store: store, Log: log}
}

// registry restores a fresh registry or writes the error response itself.
// A nil registry means the response has been sent.
func (h *ReportHandler) registry(c echo.Context) (*repository.Registry, error) {
	ctx := c.Request().Context()
	snap, err := h.Store.Load(ctx)
	if errors.Is(err, persistence.ErrNoSnapshot) {
		return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "no saved data"})
	}
	if err != nil {
		h.Log.Error(ctx, "load snapshot", err)
		return nil, c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "snapshot store unavailable"})
	}
	reg := repository.NewRegistry()
	if err := persistence.Restore(snap, reg); err != nil {
		h.Log.Error(ctx, "restore snapshot", err)
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "saved data is corrupt"})
	}
	return reg, nil
}

// VenueView is a venue with its live seat counts.
type VenueView struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	City            string   `json:"city"`
	GeneralCapacity int      `json:"general_capacity"`
	GeneralOccupied int      `json:"general_occupied"`
	VIPCapacity     int      `json:"vip_capacity"`
	VIPOccupied     int      `json:"vip_occupied"`
	Restaurants     []string `json:"restaurants"`
}

// ListVenues handles GET /v1/venues.
func (h *ReportHandler) ListVenues(c echo.Context) error {
	reg, err := h.registry(c)
	if reg == nil {
		return err
	}
	venues := reg.Venues()
	out := make([]VenueView, 0, len(venues))
	for _, v := range venues {
		view := VenueView{
			ID:              v.ID,
			Name:            v.Name,
			City:            v.City,
			GeneralCapacity: v.General.Capacity(),
			GeneralOccupied: v.General.OccupiedCount(),
			VIPCapacity:     v.VIP.Capacity(),
			VIPOccupied:     v.VIP.OccupiedCount(),
			Restaurants:     make([]string, 0, len(v.Stands)),
		}
		for _, s := range v.Stands {
			view.Restaurants = append(view.Restaurants, s.Name)
		}
		out = append(out, view)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// SeatView is one cell of a seat map.
type SeatView struct {
	Seat     int  `json:"seat"`
	Occupied bool `json:"occupied"`
}

// ZoneView is the seat map of one zone, row by row.
type ZoneView struct {
	Zone string       `json:"zone"`
	Rows [][]SeatView `json:"rows"`
}

// VenueSeats handles GET /v1/venues/:id/seats. The optional zone query
// parameter limits the map to General or VIP.
func (h *ReportHandler) VenueSeats(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	zones := model.Zones
	if q := c.QueryParam("zone"); q != "" {
		z, err := model.ParseZone(q)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "zone must be General or VIP"})
		}
		zones = []model.Zone{z}
	}

	reg, err := h.registry(c)
	if reg == nil {
		return err
	}
	venue, err := reg.Venue(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	}

	out := make([]ZoneView, 0, len(zones))
	for _, z := range zones {
		g := venue.Grid(z)
		zv := ZoneView{Zone: string(z), Rows: make([][]SeatView, g.Rows())}
		for r := 0; r < g.Rows(); r++ {
			row := make([]SeatView, g.RowWidth(r))
			for s := range row {
				row[s] = SeatView{Seat: s + 1, Occupied: g.IsSeatOccupied(r, s)}
			}
			zv.Rows[r] = row
		}
		out = append(out, zv)
	}
	return c.JSON(http.StatusOK, echo.Map{"venue_id": venue.ID, "venue": venue.Name, "zones": out})
}

// Attendance handles GET /v1/reports/attendance.
func (h *ReportHandler) Attendance(c echo.Context) error {
	reg, err := h.registry(c)
	if reg == nil {
		return err
	}
	resp := echo.Map{"items": report.AttendanceViews(reg)}
	if row, ok := report.MostAttended(reg); ok {
		resp["most_attended"] = row.View()
	}
	if row, ok := report.BestSelling(reg); ok {
		resp["best_selling"] = row.View()
	}
	return c.JSON(http.StatusOK, resp)
}

// TopProducts handles GET /v1/reports/top-products.
func (h *ReportHandler) TopProducts(c echo.Context) error {
	reg, err := h.registry(c)
	if reg == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"items": report.TopProductViews(reg)})
}

// TopCustomers handles GET /v1/reports/top-customers.
func (h *ReportHandler) TopCustomers(c echo.Context) error {
	reg, err := h.registry(c)
	if reg == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"items": report.TopCustomerViews(reg)})
}

// VIPAverage handles GET /v1/reports/vip-average.
func (h *ReportHandler) VIPAverage(c echo.Context) error {
	reg, err := h.registry(c)
	if reg == nil {
		return err
	}
	avg, ok := report.VIPAverageSpend(reg)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"customers": 0, "average": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"customers": len(reg.Customers()),
		"average":   avg.Round(2),
	})
}
