package report

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/venue-simulator/internal/repository"
)

// AttendanceView is the flat form of an attendance row used by the HTTP
// API and the console.
type AttendanceView struct {
	MatchID  string          `json:"match_id"`
	Match    string          `json:"match"`
	Venue    string          `json:"venue"`
	Date     string          `json:"date"`
	Sold     int             `json:"sold"`
	Attended int             `json:"attended"`
	Ratio    decimal.Decimal `json:"ratio_percent"`
}

type ProductView struct {
	Name    string          `json:"name"`
	Variant string          `json:"type"`
	Price   decimal.Decimal `json:"price"`
	Units   int             `json:"units_sold"`
}

type CustomerView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Tickets int    `json:"tickets"`
}

func (a MatchAttendance) View() AttendanceView {
	return AttendanceView{
		MatchID:  a.Match.ID,
		Match:    a.Match.Title(),
		Venue:    a.Match.Venue.Name,
		Date:     a.Match.Date,
		Sold:     a.Sold,
		Attended: a.Attended,
		Ratio:    a.Ratio().Round(2),
	}
}

func AttendanceViews(reg *repository.Registry) []AttendanceView {
	rows := AttendanceTable(reg)
	out := make([]AttendanceView, len(rows))
	for i, r := range rows {
		out[i] = r.View()
	}
	return out
}

func TopProductViews(reg *repository.Registry) []ProductView {
	top := TopProducts(reg)
	out := make([]ProductView, len(top))
	for i, s := range top {
		out[i] = ProductView{Name: s.Product.Name, Variant: string(s.Product.Variant), Price: s.Product.Price, Units: s.Units}
	}
	return out
}

func TopCustomerViews(reg *repository.Registry) []CustomerView {
	top := TopCustomers(reg)
	out := make([]CustomerView, len(top))
	for i, c := range top {
		out[i] = CustomerView{ID: c.Customer.ID, Name: c.Customer.Name, Tickets: c.Tickets}
	}
	return out
}
