package shop

import "strings"

func trimEmpty(s string) bool { return strings.TrimSpace(s) == "" }

// Cart is an ordered collection of purchasable items. Item IDs are unique;
// mutations are total functions, out-of-range quantities are normalized
// rather than rejected. Not safe for concurrent use on its own; the owning
// Session serializes access.
type Cart struct {
	items []CartItem
}

// Add appends item, or bumps the quantity of an existing entry with the same
// ID by one. The incoming quantity is honored only for new entries (a fresh
// extraction always carries quantity 1); re-adding an existing item means
// "one more", whatever quantity the caller stamped on it.
func (c *Cart) Add(item CartItem) {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return
		}
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	c.items = append(c.items, item)
}

// Remove deletes the item with the given ID. Absent IDs are a no-op.
func (c *Cart) Remove(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity exactly; n <= 0 removes the item.
func (c *Cart) UpdateQuantity(id string, n int) {
	if n <= 0 {
		c.Remove(id)
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = n
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy; callers cannot mutate cart state through it.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalPrice is the sum of price*quantity over all items in the given
// currency. Zero for an empty cart.
func (c *Cart) TotalPrice(cur Currency) int64 {
	var total int64
	for _, it := range c.items {
		total += it.Price.In(cur) * int64(it.Quantity)
	}
	return total
}
