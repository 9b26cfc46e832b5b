package console

import (
	"github.com/iliyamo/venue-simulator/internal/inventory"
)

func (c *Console) catalogueMenu() error {
	for {
		c.banner("RESTAURANT CATALOGUE")
		c.println("1. List products\n2. Search by name\n3. Search by type\n4. Search by price range\n5. Back")
		opt, err := c.choose("Choose an option: ", 5)
		if err != nil {
			return err
		}
		products := c.reg.Products()
		var found []*inventory.Product
		switch opt {
		case 1:
			found = products
		case 2:
			q, err := c.askText("Product name: ")
			if err != nil {
				return err
			}
			found = inventory.SearchByName(products, q)
		case 3:
			v, err := c.askVariant()
			if err != nil {
				return err
			}
			found = inventory.SearchByVariant(products, v)
		case 4:
			lo, err := c.askPrice("Minimum price: ")
			if err != nil {
				return err
			}
			hi, err := c.askPrice("Maximum price: ")
			if err != nil {
				return err
			}
			if hi.LessThan(lo) {
				lo, hi = hi, lo
			}
			found = inventory.SearchByPrice(products, lo, hi)
		case 5:
			return nil
		}
		c.listProducts(found)
	}
}

// askVariant walks the food/drink submenu down to one subtype.
func (c *Console) askVariant() (inventory.Variant, error) {
	c.println("1. Food\n2. Drink")
	kind, err := c.choose("Choose a type: ", 2)
	if err != nil {
		return "", err
	}
	if kind == 1 {
		c.println("1. Plate\n2. Package")
	} else {
		c.println("1. Alcoholic\n2. Non-alcoholic")
	}
	sub, err := c.choose("Choose a subtype: ", 2)
	if err != nil {
		return "", err
	}
	variants := [2][2]inventory.Variant{
		{inventory.VariantPlate, inventory.VariantPackage},
		{inventory.VariantAlcoholic, inventory.VariantNonAlcoholic},
	}
	return variants[kind-1][sub-1], nil
}

func (c *Console) listProducts(products []*inventory.Product) {
	if len(products) == 0 {
		c.println("\nNo products found.")
		return
	}
	c.println("")
	for i, p := range products {
		c.printf("%d.\n%s", i+1, p.Describe())
	}
}
