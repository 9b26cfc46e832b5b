package inventory

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Line is one product and the quantity wanted of it.
type Line struct {
	Product  *Product
	Quantity int
}

// Amount is quantity times unit price.
func (l Line) Amount() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart collects lines before a sale is finalized. It holds at most one
// line per product name; adding the same product again grows that line.
type Cart struct {
	lines []*Line
	index map[string]int
}

func NewCart() *Cart {
	return &Cart{index: make(map[string]int)}
}

// Add puts quantity units of product into the cart. Stock is not touched
// until CommitSale.
func (c *Cart) Add(product *Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if i, ok := c.index[product.Name]; ok {
		c.lines[i].Quantity += quantity
		return nil
	}
	c.index[product.Name] = len(c.lines)
	c.lines = append(c.lines, &Line{Product: product, Quantity: quantity})
	return nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

// Quantity returns how many units of the named product are in the cart.
func (c *Cart) Quantity(name string) int {
	if i, ok := c.index[name]; ok {
		return c.lines[i].Quantity
	}
	return 0
}

func (c *Cart) Len() int { return len(c.lines) }
func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Subtotal sums quantity times price over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Amount())
	}
	return total
}

// Shortfalls lists the lines asking for more units than are in stock.
func (c *Cart) Shortfalls() []Line {
	var out []Line
	for _, l := range c.lines {
		if l.Quantity > l.Product.Stock {
			out = append(out, *l)
		}
	}
	return out
}

// RejectedLine is a cart line that could not be committed.
type RejectedLine struct {
	Line
	Err error
}

// SaleResult reports which lines were committed against stock.
type SaleResult struct {
	Committed []Line
	Rejected  []RejectedLine
}

// Subtotal sums the committed lines only.
func (r SaleResult) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Committed {
		total = total.Add(l.Amount())
	}
	return total
}

// CommitSale decrements each product's stock by its line quantity. A line
// that would drive stock below zero is rejected and leaves its product
// untouched; the remaining lines still commit.
func CommitSale(cart *Cart) SaleResult {
	var res SaleResult
	for _, l := range cart.lines {
		if l.Quantity > l.Product.Stock {
			res.Rejected = append(res.Rejected, RejectedLine{
				Line: *l,
				Err:  fmt.Errorf("%w: %q has %d, wanted %d", ErrInsufficientStock, l.Product.Name, l.Product.Stock, l.Quantity),
			})
			continue
		}
		l.Product.Stock -= l.Quantity
		res.Committed = append(res.Committed, *l)
	}
	return res
}
