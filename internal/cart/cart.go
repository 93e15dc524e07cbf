// Package cart holds the transient storefront cart and renders it into a
// prefilled messaging deep link. Nothing here touches the network.
package cart

import (
	"slices"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Item is one cart line. Quantity is always at least 1.
type Item struct {
	Product  *entity.Product
	Quantity int
}

// Subtotal returns price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Product.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart keeps items in insertion order.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add inserts product with quantity 1, or increments it when already present.
func (c *Cart) Add(product *entity.Product) {
	if i := c.index(product.ID); i >= 0 {
		c.items[i].Quantity++

		return
	}
	c.items = append(c.items, Item{Product: product, Quantity: 1})
}

// UpdateQuantity replaces the quantity of a line. A quantity of zero or less removes it.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)

		return
	}
	if i := c.index(productID); i >= 0 {
		c.items[i].Quantity = quantity
	}
}

// Remove drops a line. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the lines.
func (c *Cart) Items() []Item {
	return slices.Clone(c.items)
}

// TotalItems sums the quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}

	return total
}

// TotalPrice sums price times quantity over every line.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}

	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.items, func(item Item) bool {
		return item.Product.ID == productID
	})
}
