package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
)

func cartItem(storeID uuid.UUID, price int64, qty int, selected bool) models.CartItem {
	return models.CartItem{
		ID:            uuid.New(),
		ProductID:     uuid.New(),
		StoreID:       storeID,
		ProductTypeID: uuid.New(),
		UnitPrice:     price,
		Quantity:      qty,
		Selected:      selected,
	}
}

func TestGroupByStorePartition(t *testing.T) {
	storeA := uuid.New()
	storeB := uuid.New()

	items := []models.CartItem{
		cartItem(storeA, 300, 1, true),
		cartItem(storeB, 100, 2, true),
		cartItem(storeA, 250, 1, true),
		cartItem(storeB, 999, 1, false), // unselected, must not appear
	}

	groups := GroupByStore(items)
	require.Len(t, groups, 2)

	assert.Equal(t, storeA, groups[0].StoreID, "first-occurrence store order preserved")
	assert.Equal(t, storeB, groups[1].StoreID)

	assert.Len(t, groups[0].Items, 2)
	assert.Len(t, groups[1].Items, 1)
	assert.Equal(t, int64(550), groups[0].Subtotal)
	assert.Equal(t, int64(200), groups[1].Subtotal)

	// every selected item appears in exactly one group
	seen := map[uuid.UUID]int{}
	for _, g := range groups {
		for _, item := range g.Items {
			seen[item.ID]++
		}
	}
	assert.Len(t, seen, 3)
	for id, count := range seen {
		assert.Equal(t, 1, count, "item %s duplicated across groups", id)
	}
}

func TestGroupByStoreEmptySelection(t *testing.T) {
	storeA := uuid.New()
	items := []models.CartItem{
		cartItem(storeA, 300, 1, false),
	}

	groups := GroupByStore(items)
	assert.NotNil(t, groups)
	assert.Empty(t, groups, "empty selection yields an empty group list, not an error")

	assert.Empty(t, GroupByStore(nil))
}

func TestGroupByStoreSubtotalMultipliesQuantity(t *testing.T) {
	storeA := uuid.New()
	groups := GroupByStore([]models.CartItem{cartItem(storeA, 125, 4, true)})
	require.Len(t, groups, 1)
	assert.Equal(t, int64(500), groups[0].Subtotal)
}
