package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medassist/api/internal/shop"
)

func TestExtractShoppingItems(t *testing.T) {
	d := Diagnosis{
		Medications: []string{"Paracetamol", "Ibuprofen"},
		Foods:       []string{"Ginger tea"},
	}
	pricer := TablePricer(
		shop.Price{Naira: 2000, Dollar: 20},
		shop.Price{Naira: 800, Dollar: 8},
	)
	items := ExtractShoppingItems(d, pricer)
	require.Len(t, items, 3)

	assert.Equal(t, "med-0", items[0].ID)
	assert.Equal(t, "Paracetamol", items[0].Name)
	assert.Equal(t, shop.Medicine, items[0].Type)
	assert.Equal(t, int64(2000), items[0].Price.Naira)
	assert.Equal(t, "Recommended medication: Paracetamol", items[0].Description)

	assert.Equal(t, "med-1", items[1].ID)

	assert.Equal(t, "food-0", items[2].ID)
	assert.Equal(t, shop.Food, items[2].Type)
	assert.Equal(t, int64(800), items[2].Price.Naira)
	assert.Equal(t, "Healing food: Ginger tea", items[2].Description)

	for _, it := range items {
		assert.Equal(t, 1, it.Quantity)
	}

	seen := map[string]bool{}
	for _, it := range items {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}

func TestExtractShoppingItemsEmpty(t *testing.T) {
	items := ExtractShoppingItems(Diagnosis{}, nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRandomPricerBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		p := RandomPricer(shop.Medicine, "x", i)
		assert.GreaterOrEqual(t, p.Naira, int64(1000))
		assert.Less(t, p.Naira, int64(6000))
		assert.GreaterOrEqual(t, p.Dollar, int64(10))
		assert.Less(t, p.Dollar, int64(60))

		p = RandomPricer(shop.Food, "x", i)
		assert.GreaterOrEqual(t, p.Naira, int64(500))
		assert.Less(t, p.Naira, int64(2500))
		assert.GreaterOrEqual(t, p.Dollar, int64(5))
		assert.Less(t, p.Dollar, int64(25))
	}
}
