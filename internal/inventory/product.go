package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind separates food from drinks.
type Kind string

const (
	KindFood  Kind = "food"
	KindDrink Kind = "drink"
)

// Variant is the subtype tag of a product. Plate and package are food,
// alcoholic and non-alcoholic are drinks.
type Variant string

const (
	VariantPlate        Variant = "plate"
	VariantPackage      Variant = "package"
	VariantAlcoholic    Variant = "alcoholic"
	VariantNonAlcoholic Variant = "non-alcoholic"
)

// ParseVariant validates a subtype tag.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown product variant %q", s)
	}
	return v, nil
}

func (v Variant) Valid() bool {
	switch v {
	case VariantPlate, VariantPackage, VariantAlcoholic, VariantNonAlcoholic:
		return true
	}
	return false
}

// Kind returns the family the variant belongs to.
func (v Variant) Kind() Kind {
	if v == VariantAlcoholic || v == VariantNonAlcoholic {
		return KindDrink
	}
	return KindFood
}

// Label is the human form used by menus.
func (v Variant) Label() string {
	switch v {
	case VariantPlate:
		return "Plate"
	case VariantPackage:
		return "Package"
	case VariantAlcoholic:
		return "Alcoholic"
	case VariantNonAlcoholic:
		return "Non-alcoholic"
	}
	return string(v)
}

// Product is a sellable concession item. Name is its identity within a
// stand. Price already includes the load-time tax. Stock only goes down.
type Product struct {
	Name     string
	Quantity string
	Price    decimal.Decimal
	Stock    int
	Variant  Variant
}

// NewProduct builds a product after validating its variant and stock.
func NewProduct(name, quantity string, price decimal.Decimal, stock int, variant Variant) (*Product, error) {
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if !variant.Valid() {
		return nil, fmt.Errorf("product %q: unknown variant %q", name, variant)
	}
	if stock < 0 {
		return nil, fmt.Errorf("product %q: negative stock %d", name, stock)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("product %q: negative price %s", name, price)
	}
	return &Product{Name: name, Quantity: quantity, Price: price, Stock: stock, Variant: variant}, nil
}

func (p *Product) Kind() Kind { return p.Variant.Kind() }

// Plated is true for food served on a plate.
func (p *Product) Plated() bool { return p.Variant == VariantPlate }

// Alcoholic is true for alcoholic drinks.
func (p *Product) Alcoholic() bool { return p.Variant == VariantAlcoholic }

// InStock reports whether the product can be offered for sale.
func (p *Product) InStock() bool { return p.Stock > 0 }

// Describe renders the product for menus.
func (p *Product) Describe() string {
	return fmt.Sprintf("-Name: %s\n-Stock: %d\n-Price: %s\n-Type: %s\n",
		p.Name, p.Stock, p.Price.StringFixed(2), p.Variant.Label())
}

// ProductRecord is the persisted form of a product.
type ProductRecord struct {
	Name       string          `json:"name" validate:"required"`
	Quantity   string          `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock" validate:"gte=0"`
	Additional Variant         `json:"additional" validate:"required,oneof=plate package alcoholic non-alcoholic"`
}

// ToRecord copies the product into its persisted form.
func (p *Product) ToRecord() ProductRecord {
	return ProductRecord{
		Name:       p.Name,
		Quantity:   p.Quantity,
		Price:      p.Price,
		Stock:      p.Stock,
		Additional: p.Variant,
	}
}

// ProductFromRecord rebuilds a product. The price is taken as stored; no
// tax is applied again.
func ProductFromRecord(r ProductRecord) (*Product, error) {
	return NewProduct(r.Name, r.Quantity, r.Price, r.Stock, r.Additional)
}
