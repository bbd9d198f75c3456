package ai

import (
	"fmt"
	"math/rand"

	"medassist/api/internal/shop"
)

// Pricer assigns a price to an extracted item. Pricing is a policy, not a
// property of the diagnosis, so it is injected; tests use a fixed table.
type Pricer func(t shop.ItemType, name string, index int) shop.Price

// RandomPricer prices within the catalogue's bounds: medicines in
// [1000,6000) naira / [10,60) dollars, foods in [500,2500) naira /
// [5,25) dollars.
func RandomPricer(t shop.ItemType, name string, index int) shop.Price {
	if t == shop.Medicine {
		return shop.Price{
			Naira:  int64(rand.Intn(5000)) + 1000,
			Dollar: int64(rand.Intn(50)) + 10,
		}
	}
	return shop.Price{
		Naira:  int64(rand.Intn(2000)) + 500,
		Dollar: int64(rand.Intn(20)) + 5,
	}
}

// TablePricer returns a deterministic pricer with one flat price per type.
func TablePricer(medicine, food shop.Price) Pricer {
	return func(t shop.ItemType, name string, index int) shop.Price {
		if t == shop.Medicine {
			return medicine
		}
		return food
	}
}

// ExtractShoppingItems turns every medication and every food of a diagnosis
// into exactly one cart item with quantity 1. IDs are positional
// ("med-0", "food-1") and unique within one extraction.
func ExtractShoppingItems(d Diagnosis, price Pricer) []shop.CartItem {
	if price == nil {
		price = RandomPricer
	}
	items := make([]shop.CartItem, 0, len(d.Medications)+len(d.Foods))
	for i, med := range d.Medications {
		items = append(items, shop.CartItem{
			ID:          fmt.Sprintf("med-%d", i),
			Name:        med,
			Type:        shop.Medicine,
			Price:       price(shop.Medicine, med, i),
			Quantity:    1,
			Description: "Recommended medication: " + med,
		})
	}
	for i, food := range d.Foods {
		items = append(items, shop.CartItem{
			ID:          fmt.Sprintf("food-%d", i),
			Name:        food,
			Type:        shop.Food,
			Price:       price(shop.Food, food, i),
			Quantity:    1,
			Description: "Healing food: " + food,
		})
	}
	return items
}
