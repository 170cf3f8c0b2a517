package pricing

import (
	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/pkg/db/models"
)

// StoreGroup is the subset of a cart's selected items belonging to one store.
type StoreGroup struct {
	StoreID  uuid.UUID
	Items    []models.CartItem
	Subtotal int64
}

// GroupByStore partitions the selected cart items into per-store groups,
// preserving the first-encountered store order. An empty selection yields an
// empty slice. No shipping or discount computation happens here.
func GroupByStore(items []models.CartItem) []StoreGroup {
	groups := make([]StoreGroup, 0)
	index := make(map[uuid.UUID]int)
	for _, item := range items {
		if !item.Selected {
			continue
		}
		pos, ok := index[item.StoreID]
		if !ok {
			pos = len(groups)
			index[item.StoreID] = pos
			groups = append(groups, StoreGroup{StoreID: item.StoreID})
		}
		groups[pos].Items = append(groups[pos].Items, item)
		groups[pos].Subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return groups
}

// productTypeSet collects the distinct product types present in a group.
func productTypeSet(items []models.CartItem) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		set[item.ProductTypeID] = struct{}{}
	}
	return set
}
