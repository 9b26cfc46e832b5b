package console

import (
	"github.com/iliyamo/venue-simulator/internal/report"
)

func (c *Console) indicatorsMenu() error {
	for {
		c.banner("INDICATORS")
		c.println("1. Average VIP customer spend\n2. Attendance table\n3. Most attended match\n" +
			"4. Best-selling match\n5. Top 3 products\n6. Top 3 customers\n7. Back")
		opt, err := c.choose("Choose an option: ", 7)
		if err != nil {
			return err
		}
		switch opt {
		case 1:
			c.showVIPAverage()
		case 2:
			c.showAttendanceTable()
		case 3:
			row, ok := report.MostAttended(c.reg)
			c.showLeader("Most attended match", row, ok)
		case 4:
			row, ok := report.BestSelling(c.reg)
			c.showLeader("Best-selling match", row, ok)
		case 5:
			c.showTopProducts()
		case 6:
			c.showTopCustomers()
		case 7:
			return nil
		}
	}
}

func (c *Console) showVIPAverage() {
	avg, ok := report.VIPAverageSpend(c.reg)
	if !ok {
		c.println("\nNo customers registered.")
		return
	}
	c.printf("\nAverage spend per customer (VIP tickets and restaurants): $%s\n", money(avg))
}

func (c *Console) showAttendanceTable() {
	rows := report.AttendanceTable(c.reg)
	if len(rows) == 0 {
		c.println("\nNo matches loaded.")
		return
	}
	c.printf("\n%-40s %-25s %6s %9s %8s\n", "Match", "Venue", "Sold", "Attended", "Ratio")
	for _, r := range rows {
		c.printf("%-40s %-25s %6d %9d %7s%%\n",
			r.Match.Title(), r.Match.Venue.Name, r.Sold, r.Attended, money(r.Ratio()))
	}
}

func (c *Console) showLeader(title string, row report.MatchAttendance, ok bool) {
	if !ok {
		c.printf("\n%s: no data yet.\n", title)
		return
	}
	c.printf("\n%s:\n%s-Sold: %d\n-Attended: %d\n", title, row.Match.Describe(), row.Sold, row.Attended)
}

func (c *Console) showTopProducts() {
	top := report.TopProducts(c.reg)
	if len(top) == 0 {
		c.println("\nNo products sold yet.")
		return
	}
	c.println("")
	for i, p := range top {
		c.printf("%d. %s: %d units\n", i+1, p.Product.Name, p.Units)
	}
}

func (c *Console) showTopCustomers() {
	top := report.TopCustomers(c.reg)
	if len(top) == 0 {
		c.println("\nNo tickets sold yet.")
		return
	}
	c.println("")
	for i, ct := range top {
		c.printf("%d. %s (%s): %d tickets\n", i+1, ct.Customer.Name, ct.Customer.ID, ct.Tickets)
	}
}
