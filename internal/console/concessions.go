package console

import (
	"context"
	"errors"

	"github.com/iliyamo/venue-simulator/internal/inventory"
	"github.com/iliyamo/venue-simulator/internal/pricing"
	"github.com/iliyamo/venue-simulator/internal/service"
)

func (c *Console) concessionMenu(ctx context.Context) error {
	for {
		c.banner("RESTAURANT SALES")
		c.println("1. Buy at a restaurant\n2. Back")
		opt, err := c.choose("Choose an option: ", 2)
		if err != nil || opt == 2 {
			return err
		}
		if err := c.buyConcession(ctx); err != nil {
			return err
		}
	}
}

func (c *Console) buyConcession(ctx context.Context) error {
	cust, err := c.identify(ctx)
	if err != nil || cust == nil {
		return err
	}
	tickets := c.desks.Concession.AttendedTickets(cust.ID)
	if len(tickets) == 0 {
		c.println("\nThe customer has no ticket with confirmed attendance.")
		return nil
	}
	c.println("")
	for _, t := range tickets {
		c.println(t.Describe())
	}
	t, err := c.pickTicket("Ticket ID for this purchase: ", tickets)
	if err != nil {
		return err
	}
	venue := t.Match.Venue
	if !venue.HasConcessionStock() {
		c.println("\nNothing left to sell at this venue.")
		return nil
	}

	var open []int
	for i, s := range venue.Stands {
		if s.Catalogue.HasStock() {
			open = append(open, i)
			c.printf("%d. %s\n", len(open), s.Name)
		}
	}
	opt, err := c.choose("Restaurant number: ", len(open))
	if err != nil {
		return err
	}
	sess, err := c.desks.Concession.Open(ctx, cust.ID, t.ID, open[opt-1])
	if err != nil {
		c.printf("\nCould not open the restaurant: %v\n", err)
		return nil
	}

	ok, err := c.fillCart(sess)
	if err != nil || !ok {
		sess.Cancel()
		return err
	}
	return c.settle(ctx, sess)
}

// fillCart collects products until the user finishes with a non-empty
// cart (true) or cancels (false).
func (c *Console) fillCart(sess *service.Session) (bool, error) {
	products := sess.Available()
	c.banner("PRODUCTS AT " + sess.Stand.Name)
	for i, p := range products {
		c.printf("%d.\n%s", i+1, p.Describe())
	}
	for {
		c.println("1. Add product\n2. Finish\n3. Cancel")
		opt, err := c.choose("Choose an option: ", 3)
		if err != nil {
			return false, err
		}
		switch opt {
		case 1:
			if err := c.addToCart(sess, products); err != nil {
				return false, err
			}
		case 2:
			if sess.Cart().Empty() {
				c.println("\nNo products selected yet.")
				continue
			}
			return true, nil
		case 3:
			c.println("\nPurchase cancelled.")
			return false, nil
		}
	}
}

func (c *Console) addToCart(sess *service.Session, products []*inventory.Product) error {
	n, err := c.choose("Product number: ", len(products))
	if err != nil {
		return err
	}
	p := products[n-1]
	qty, err := c.askPositive("Quantity: ")
	if err != nil {
		return err
	}
	if err := sess.Add(p.Name, qty); err != nil {
		c.printf("\nCould not add %s: %v\n", p.Name, err)
		return nil
	}
	if want := sess.Cart().Quantity(p.Name); want > p.Stock {
		c.printf("Only %d %s in stock; that line will be rejected at checkout.\n", p.Stock, p.Name)
	}
	c.printf("\nAdded to cart. Subtotal: $%s\n", money(sess.Cart().Subtotal()))
	return nil
}

func (c *Console) settle(ctx context.Context, sess *service.Session) error {
	q := sess.Quote()
	if q.Discounted() {
		c.printf("\nThe customer ID is a perfect number: discount of $%s applied.\n", money(q.Discount))
	} else {
		c.println("\nThe customer does not qualify for a discount.")
	}
	c.banner("INVOICE SUMMARY")
	for _, l := range sess.Cart().Lines() {
		c.printf("%s: %d x $%s = $%s\n", l.Product.Name, l.Quantity, money(l.Product.Price), money(l.Amount()))
	}
	c.printBreakdown(q)

	c.println("\n1. Pay\n2. Cancel")
	opt, err := c.choose("Choose an option: ", 2)
	if err != nil {
		sess.Cancel()
		return err
	}
	if opt == 2 {
		sess.Cancel()
		c.println("\nPurchase cancelled.")
		return nil
	}

	receipt, err := sess.Checkout(ctx)
	if receipt != nil {
		for _, r := range receipt.Rejected {
			c.printf("Rejected %d x %s: %v\n", r.Quantity, r.Product.Name, r.Err)
		}
	}
	switch {
	case errors.Is(err, inventory.ErrInsufficientStock):
		c.println("\nNothing could be sold; no invoice was created.")
		return nil
	case err != nil:
		return err
	}
	if len(receipt.Rejected) > 0 {
		c.println("\nFinal amounts:")
		c.printBreakdown(receipt.Quote)
	}
	c.println("\nThanks for your purchase.")
	return nil
}

func (c *Console) printBreakdown(q pricing.Breakdown) {
	c.printf("\nSubtotal: $%s\nDiscount: -$%s\nTax: +$%s\nTotal: $%s\n",
		money(q.Subtotal), money(q.Discount), money(q.Tax), money(q.Total))
}
