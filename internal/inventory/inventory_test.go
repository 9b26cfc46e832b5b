package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, name, price string, stock int, v Variant) *Product {
	t.Helper()
	p, err := NewProduct(name, "1", decimal.RequireFromString(price), stock, v)
	require.NoError(t, err)
	return p
}

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct("", "1", decimal.NewFromInt(1), 1, VariantPlate)
	assert.Error(t, err)
	_, err = NewProduct("Soup", "1", decimal.NewFromInt(1), 1, Variant("salad"))
	assert.Error(t, err)
	_, err = NewProduct("Soup", "1", decimal.NewFromInt(1), -1, VariantPlate)
	assert.Error(t, err)
	_, err = NewProduct("Soup", "1", decimal.NewFromInt(-1), 1, VariantPlate)
	assert.Error(t, err)
}

func TestVariantKinds(t *testing.T) {
	beer := mustProduct(t, "Beer", "5", 1, VariantAlcoholic)
	soda := mustProduct(t, "Soda", "2", 1, VariantNonAlcoholic)
	burger := mustProduct(t, "Burger", "9", 1, VariantPlate)
	chips := mustProduct(t, "Chips", "3", 1, VariantPackage)

	assert.Equal(t, KindDrink, beer.Kind())
	assert.True(t, beer.Alcoholic())
	assert.Equal(t, KindDrink, soda.Kind())
	assert.False(t, soda.Alcoholic())
	assert.Equal(t, KindFood, burger.Kind())
	assert.True(t, burger.Plated())
	assert.Equal(t, KindFood, chips.Kind())
	assert.False(t, chips.Plated())

	_, err := ParseVariant("plate")
	assert.NoError(t, err)
	_, err = ParseVariant("Plate")
	assert.Error(t, err)
}

func TestCatalogue(t *testing.T) {
	burger := mustProduct(t, "Burger", "9", 0, VariantPlate)
	beer := mustProduct(t, "Beer", "5", 4, VariantAlcoholic)

	c, err := NewCatalogue(burger, beer)
	require.NoError(t, err)

	got, err := c.Lookup("Beer")
	require.NoError(t, err)
	assert.Same(t, beer, got)

	_, err = c.Lookup("beer")
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Len(t, c.All(), 2, "sold-out products stay catalogued")
	assert.Equal(t, []*Product{beer}, c.Available())
	assert.True(t, c.HasStock())

	beer.Stock = 0
	assert.False(t, c.HasStock())
	assert.Empty(t, c.Available())

	assert.ErrorIs(t, c.Add(mustProduct(t, "Beer", "1", 1, VariantAlcoholic)), ErrDuplicateProduct)
}

func TestCartMergesRepeatedProduct(t *testing.T) {
	beer := mustProduct(t, "Beer", "5.80", 10, VariantAlcoholic)
	fries := mustProduct(t, "Fries", "3.48", 10, VariantPackage)

	cart := NewCart()
	require.NoError(t, cart.Add(beer, 2))
	require.NoError(t, cart.Add(fries, 1))
	require.NoError(t, cart.Add(beer, 3))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Beer", lines[0].Product.Name)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 5, cart.Quantity("Beer"))
	assert.Equal(t, 0, cart.Quantity("Water"))
	assert.True(t, decimal.RequireFromString("32.48").Equal(cart.Subtotal()), "got %s", cart.Subtotal())
	assert.Equal(t, 10, beer.Stock, "adding to the cart must not touch stock")
}

func TestCartRejectsNonPositiveQuantity(t *testing.T) {
	beer := mustProduct(t, "Beer", "5", 10, VariantAlcoholic)
	cart := NewCart()
	assert.ErrorIs(t, cart.Add(beer, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.Add(beer, -2), ErrInvalidQuantity)
	assert.True(t, cart.Empty())
}

func TestCommitSale(t *testing.T) {
	beer := mustProduct(t, "Beer", "5", 10, VariantAlcoholic)
	fries := mustProduct(t, "Fries", "3", 4, VariantPackage)
	water := mustProduct(t, "Water", "1", 7, VariantNonAlcoholic)

	cart := NewCart()
	require.NoError(t, cart.Add(beer, 3))
	require.NoError(t, cart.Add(fries, 4))
	assert.Empty(t, cart.Shortfalls())

	res := CommitSale(cart)
	assert.Len(t, res.Committed, 2)
	assert.Empty(t, res.Rejected)
	assert.Equal(t, 7, beer.Stock)
	assert.Equal(t, 0, fries.Stock)
	assert.Equal(t, 7, water.Stock, "uninvolved products are unchanged")
	assert.True(t, decimal.NewFromInt(27).Equal(res.Subtotal()))
}

func TestCommitSaleRejectsOverdrawnLine(t *testing.T) {
	beer := mustProduct(t, "Beer", "5", 2, VariantAlcoholic)
	fries := mustProduct(t, "Fries", "3", 4, VariantPackage)

	cart := NewCart()
	require.NoError(t, cart.Add(beer, 3))
	require.NoError(t, cart.Add(fries, 1))
	require.Len(t, cart.Shortfalls(), 1)

	res := CommitSale(cart)
	require.Len(t, res.Rejected, 1)
	assert.ErrorIs(t, res.Rejected[0].Err, ErrInsufficientStock)
	assert.Equal(t, "Beer", res.Rejected[0].Product.Name)
	assert.Equal(t, 2, beer.Stock, "rejected line leaves stock untouched")
	require.Len(t, res.Committed, 1)
	assert.Equal(t, 3, fries.Stock)
}

func TestSearch(t *testing.T) {
	products := []*Product{
		mustProduct(t, "Hot Dog", "4.64", 3, VariantPlate),
		mustProduct(t, "Dog Treats", "2.32", 3, VariantPackage),
		mustProduct(t, "Lager", "6.96", 3, VariantAlcoholic),
		mustProduct(t, "Cola", "2.90", 3, VariantNonAlcoholic),
	}

	assert.Len(t, SearchByName(products, "dog"), 2)
	assert.Len(t, SearchByName(products, "LAGER"), 1)
	assert.Empty(t, SearchByName(products, "pizza"))

	got := SearchByVariant(products, VariantNonAlcoholic)
	require.Len(t, got, 1)
	assert.Equal(t, "Cola", got[0].Name)

	got = SearchByPrice(products, decimal.RequireFromString("2.90"), decimal.RequireFromString("4.64"))
	require.Len(t, got, 2)
	assert.Equal(t, "Hot Dog", got[0].Name)
	assert.Equal(t, "Cola", got[1].Name)
}

func TestProductRecordRoundTrip(t *testing.T) {
	p := mustProduct(t, "Nachos", "11.60", 5, VariantPackage)
	back, err := ProductFromRecord(p.ToRecord())
	require.NoError(t, err)
	assert.Equal(t, p.Name, back.Name)
	assert.True(t, p.Price.Equal(back.Price), "price is stored taxed and not taxed again")
	assert.Equal(t, p.Variant, back.Variant)
}
