package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("duplicate product name")
)

// Catalogue is the ordered product list of one concession stand, indexed
// by exact product name. Products with no stock stay in the catalogue;
// Available hides them.
type Catalogue struct {
	products []*Product
	byName   map[string]*Product
}

// NewCatalogue indexes the products in the given order. Two products may
// not share a name.
func NewCatalogue(products ...*Product) (*Catalogue, error) {
	c := &Catalogue{byName: make(map[string]*Product, len(products))}
	for _, p := range products {
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a product to the catalogue.
func (c *Catalogue) Add(p *Product) error {
	if _, ok := c.byName[p.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateProduct, p.Name)
	}
	c.byName[p.Name] = p
	c.products = append(c.products, p)
	return nil
}

// Lookup finds a product by exact, case-sensitive name.
func (c *Catalogue) Lookup(name string) (*Product, error) {
	p, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProductNotFound, name)
	}
	return p, nil
}

// All returns every product in catalogue order, including sold-out ones.
func (c *Catalogue) All() []*Product {
	out := make([]*Product, len(c.products))
	copy(out, c.products)
	return out
}

// Available returns the products that still have stock.
func (c *Catalogue) Available() []*Product {
	var out []*Product
	for _, p := range c.products {
		if p.InStock() {
			out = append(out, p)
		}
	}
	return out
}

// HasStock reports whether at least one product can be sold.
func (c *Catalogue) HasStock() bool {
	for _, p := range c.products {
		if p.InStock() {
			return true
		}
	}
	return false
}

func (c *Catalogue) Len() int { return len(c.products) }
