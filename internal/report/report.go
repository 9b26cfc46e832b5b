// Package report computes the management indicators. It only reads the
// registry; nothing here mutates tickets, invoices or stock.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/venue-simulator/internal/inventory"
	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/repository"
)

// TopN is the length of every ranking.
const TopN = 3

var hundred = decimal.NewFromInt(100)

// MatchAttendance is one row of the attendance table.
type MatchAttendance struct {
	Match    *model.Match
	Sold     int
	Attended int
}

// Ratio is the share of sold tickets that were attended, in percent. It
// is zero when nothing was sold.
func (a MatchAttendance) Ratio() decimal.Decimal {
	if a.Sold == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(a.Attended)).Mul(hundred).Div(decimal.NewFromInt(int64(a.Sold)))
}

// AttendanceTable lists every match in registry order with its ticket
// counts.
func AttendanceTable(reg *repository.Registry) []MatchAttendance {
	matches := reg.Matches()
	rows := make([]MatchAttendance, len(matches))
	index := make(map[string]int, len(matches))
	for i, m := range matches {
		rows[i] = MatchAttendance{Match: m}
		index[m.ID] = i
	}
	for _, t := range reg.Tickets() {
		i, ok := index[t.Match.ID]
		if !ok {
			continue
		}
		rows[i].Sold++
		if t.Attended {
			rows[i].Attended++
		}
	}
	return rows
}

// MostAttended returns the match with the most confirmed attendances. The
// first match in registry order wins a tie; ok is false when nobody has
// attended anything.
func MostAttended(reg *repository.Registry) (row MatchAttendance, ok bool) {
	for _, r := range AttendanceTable(reg) {
		if r.Attended > 0 && (!ok || r.Attended > row.Attended) {
			row, ok = r, true
		}
	}
	return row, ok
}

// BestSelling returns the match with the most tickets sold, with the same
// tie and empty rules as MostAttended.
func BestSelling(reg *repository.Registry) (row MatchAttendance, ok bool) {
	for _, r := range AttendanceTable(reg) {
		if r.Sold > 0 && (!ok || r.Sold > row.Sold) {
			row, ok = r, true
		}
	}
	return row, ok
}

// ProductSales is a product and the units sold of it across invoices.
type ProductSales struct {
	Product *inventory.Product
	Units   int
}

// TopProducts ranks products by units sold. Products never sold are left
// out; ties keep catalogue order.
func TopProducts(reg *repository.Registry) []ProductSales {
	units := make(map[*inventory.Product]int)
	for _, inv := range reg.Invoices() {
		for _, l := range inv.Lines {
			units[l.Product] += l.Quantity
		}
	}
	var out []ProductSales
	for _, p := range reg.Products() {
		if n := units[p]; n > 0 {
			out = append(out, ProductSales{Product: p, Units: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Units > out[j].Units })
	return head(out)
}

// CustomerTickets is a customer and how many tickets they bought.
type CustomerTickets struct {
	Customer *model.Customer
	Tickets  int
}

// TopCustomers ranks customers by tickets bought. Customers without
// tickets are left out; ties keep registration order.
func TopCustomers(reg *repository.Registry) []CustomerTickets {
	counts := make(map[string]int)
	for _, t := range reg.Tickets() {
		counts[t.Customer.ID]++
	}
	var out []CustomerTickets
	for _, c := range reg.Customers() {
		if n := counts[c.ID]; n > 0 {
			out = append(out, CustomerTickets{Customer: c, Tickets: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tickets > out[j].Tickets })
	return head(out)
}

// CustomerSpend is what one customer paid for VIP tickets plus every
// concession invoice.
func CustomerSpend(reg *repository.Registry, customerID string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range reg.TicketsFor(customerID) {
		if t.Zone == model.ZoneVIP {
			total = total.Add(t.Total)
		}
	}
	for _, inv := range reg.InvoicesFor(customerID) {
		total = total.Add(inv.Total)
	}
	return total
}

// VIPAverageSpend averages CustomerSpend over every registered customer,
// including those who spent nothing. ok is false with no customers.
func VIPAverageSpend(reg *repository.Registry) (avg decimal.Decimal, ok bool) {
	customers := reg.Customers()
	if len(customers) == 0 {
		return decimal.Zero, false
	}
	sum := decimal.Zero
	for _, c := range customers {
		sum = sum.Add(CustomerSpend(reg, c.ID))
	}
	return sum.Div(decimal.NewFromInt(int64(len(customers)))), true
}

func head[T any](s []T) []T {
	if len(s) > TopN {
		return s[:TopN]
	}
	return s
}
