package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/venue-simulator/internal/inventory"
)

// InvoiceLine is a product sold on an invoice. The product is kept by
// reference so reports see the same identity as the catalogue.
type InvoiceLine struct {
	Product  *inventory.Product
	Quantity int
}

// Amount is quantity times the unit price at sale time.
func (l InvoiceLine) Amount() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Invoice records one concession purchase. It is immutable once created.
type Invoice struct {
	Customer *Customer
	Match    *Match
	Stand    *Stand
	Lines    []InvoiceLine
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// QuantityOf sums the units of the named product on the invoice.
func (inv *Invoice) QuantityOf(name string) int {
	n := 0
	for _, l := range inv.Lines {
		if l.Product.Name == name {
			n += l.Quantity
		}
	}
	return n
}

// Describe renders the invoice for menus.
func (inv *Invoice) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "-Customer: %s\n-Match: %s\n-Restaurant: %s\n", inv.Customer.Name, inv.Match.Title(), inv.Stand.Name)
	for _, l := range inv.Lines {
		fmt.Fprintf(&b, "  %d x %s  %s\n", l.Quantity, l.Product.Name, l.Amount().StringFixed(2))
	}
	fmt.Fprintf(&b, "-Subtotal: %s\n-Discount: %s\n-Tax: %s\n-Total: %s\n",
		inv.Subtotal.StringFixed(2), inv.Discount.StringFixed(2), inv.Tax.StringFixed(2), inv.Total.StringFixed(2))
	return b.String()
}

// InvoiceLineRecord stores a line by product name.
type InvoiceLineRecord struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// InvoiceRecord is the persisted form of an invoice.
type InvoiceRecord struct {
	CustomerID string              `json:"customer" validate:"required"`
	MatchID    string              `json:"match" validate:"required"`
	Stand      string              `json:"restaurant" validate:"required"`
	Lines      []InvoiceLineRecord `json:"lines" validate:"dive"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Discount   decimal.Decimal     `json:"discount"`
	Tax        decimal.Decimal     `json:"tax"`
	Total      decimal.Decimal     `json:"total"`
}

func (inv *Invoice) ToRecord() InvoiceRecord {
	r := InvoiceRecord{
		CustomerID: inv.Customer.ID,
		MatchID:    inv.Match.ID,
		Stand:      inv.Stand.Name,
		Subtotal:   inv.Subtotal,
		Discount:   inv.Discount,
		Tax:        inv.Tax,
		Total:      inv.Total,
	}
	for _, l := range inv.Lines {
		r.Lines = append(r.Lines, InvoiceLineRecord{Product: l.Product.Name, Quantity: l.Quantity})
	}
	return r
}

// InvoiceFromRecord rebuilds an invoice from resolved references. Line
// products are looked up in the stand catalogue.
func InvoiceFromRecord(r InvoiceRecord, customer *Customer, match *Match, stand *Stand) (*Invoice, error) {
	inv := &Invoice{
		Customer: customer,
		Match:    match,
		Stand:    stand,
		Subtotal: r.Subtotal,
		Discount: r.Discount,
		Tax:      r.Tax,
		Total:    r.Total,
	}
	for _, lr := range r.Lines {
		p, err := stand.Catalogue.Lookup(lr.Product)
		if err != nil {
			return nil, fmt.Errorf("invoice for %s at %q: %w", r.CustomerID, r.Stand, err)
		}
		inv.Lines = append(inv.Lines, InvoiceLine{Product: p, Quantity: lr.Quantity})
	}
	return inv, nil
}
