package cart

import "log"

// Item is one line of a cart. Name, UnitPrice and ImageURL are display
// snapshots captured when the product was first added.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart holds the pre-checkout selection. At most one entry exists per
// product id and no entry ever has a quantity below 1; a quantity that
// reaches zero evicts the entry. Insertion order is kept for display.
//
// None of the transitions perform I/O or return errors; bad input is
// handled by no-op or eviction.
type Cart struct {
	Items []Item `json:"items"`
}

// AddOrIncrement bumps the quantity of an existing entry by one, or
// inserts the item with quantity 1. The Quantity field of the argument
// is ignored.
func (c *Cart) AddOrIncrement(item Item) {
	if i := c.index(item.ProductID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// Decrement lowers the quantity by one, evicting the entry when it
// would reach zero. Unknown ids are a no-op.
func (c *Cart) Decrement(productID string) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	if c.Items[i].Quantity <= 1 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return
	}
	c.Items[i].Quantity--
}

// Remove deletes the entry regardless of quantity. Unknown ids are a
// no-op.
func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// Clear empties the cart, typically after a successful checkout.
func (c *Cart) Clear() {
	c.Items = nil
}

// SetQuantity overwrites the quantity of an existing entry; n <= 0
// evicts it. Setting a quantity on an id that is not in the cart is
// logged and ignored.
func (c *Cart) SetQuantity(productID string, n int) {
	i := c.index(productID)
	if i < 0 {
		log.Printf("cart: set quantity for unknown product %s ignored", productID)
		return
	}
	if n <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return
	}
	c.Items[i].Quantity = n
}

// Total derives the cart total; it is never stored.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

func (c *Cart) Len() int {
	return len(c.Items)
}

func (c *Cart) index(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
