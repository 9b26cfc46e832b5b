package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SearchByName returns products whose name contains query, ignoring case.
func SearchByName(products []*Product, query string) []*Product {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []*Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// SearchByVariant returns products of the given subtype.
func SearchByVariant(products []*Product, v Variant) []*Product {
	var out []*Product
	for _, p := range products {
		if p.Variant == v {
			out = append(out, p)
		}
	}
	return out
}

// SearchByPrice returns products priced within [min, max].
func SearchByPrice(products []*Product, min, max decimal.Decimal) []*Product {
	var out []*Product
	for _, p := range products {
		if p.Price.GreaterThanOrEqual(min) && p.Price.LessThanOrEqual(max) {
			out = append(out, p)
		}
	}
	return out
}
