// Package pricing turns a subtotal and a customer identifier into a
// payable amount. Both the ticket and the concession flow run the same
// pipeline: discount, then tax on the discounted amount.
//
// Product prices already carry one 16% tax applied at load time
// (WithLoadTax); the pipeline taxes the discounted subtotal again at sale
// time. Both stages are intentional and must stay.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/venue-simulator/internal/model"
)

var (
	// TaxRate is applied at load time to product prices and again at
	// sale time to every discounted subtotal.
	TaxRate = decimal.RequireFromString("0.16")
	// TicketDiscountRate applies when the customer identifier is a
	// vampire number.
	TicketDiscountRate = decimal.RequireFromString("0.50")
	// ConcessionDiscountRate applies when the customer identifier is a
	// perfect number.
	ConcessionDiscountRate = decimal.RequireFromString("0.15")

	generalTicketPrice = decimal.NewFromInt(35)
	vipTicketPrice     = decimal.NewFromInt(75)
)

// Breakdown is the result of running the pipeline over one subtotal.
type Breakdown struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	AfterDiscount decimal.Decimal `json:"after_discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// Discounted reports whether a discount was granted.
func (b Breakdown) Discounted() bool { return b.Discount.IsPositive() }

// Quote runs discount then tax over subtotal. The discount is
// rate*subtotal when eligible and zero otherwise.
func Quote(subtotal decimal.Decimal, eligible bool, rate decimal.Decimal) Breakdown {
	discount := decimal.Zero
	if eligible {
		discount = rate.Mul(subtotal)
	}
	after := subtotal.Sub(discount)
	tax := after.Mul(TaxRate)
	return Breakdown{
		Subtotal:      subtotal,
		Discount:      discount,
		AfterDiscount: after,
		Tax:           tax,
		Total:         after.Add(tax),
	}
}

// TicketPrice is the base price of one seat in the zone.
func TicketPrice(zone model.Zone) decimal.Decimal {
	if zone == model.ZoneVIP {
		return vipTicketPrice
	}
	return generalTicketPrice
}

// TicketQuote prices one seat in zone for the customer. Vampire-number
// identifiers get half off.
func TicketQuote(customerID string, zone model.Zone) Breakdown {
	return Quote(TicketPrice(zone), IsVampire(customerID), TicketDiscountRate)
}

// ConcessionQuote prices a concession cart subtotal for the customer.
// Perfect-number identifiers get 15% off.
func ConcessionQuote(customerID string, subtotal decimal.Decimal) Breakdown {
	return Quote(subtotal, IsPerfectID(customerID), ConcessionDiscountRate)
}

// WithLoadTax folds the tax into a base product price. The load path
// calls it exactly once per product.
func WithLoadTax(base decimal.Decimal) decimal.Decimal {
	return base.Add(base.Mul(TaxRate))
}
