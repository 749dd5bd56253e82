package catalog

import (
	"github.com/ivmish/teremok/internal/domain/model"
)

// Catalog is the static souvenir price list. It is fixed at construction
// and safe for concurrent reads.
type Catalog struct {
	items map[string]model.CatalogItem
	order []string
}

// New builds a catalog from the provided items preserving their order.
func New(items []model.CatalogItem) *Catalog {
	c := &Catalog{items: make(map[string]model.CatalogItem, len(items))}
	for _, item := range items {
		if _, ok := c.items[item.Name]; ok {
			continue
		}
		c.items[item.Name] = item
		c.order = append(c.order, item.Name)
	}
	return c
}

// Default returns the guesthouse merchandise stocked today.
func Default() *Catalog {
	return New([]model.CatalogItem{
		{Name: "Кружка «Теремок»", Price: 35000, Photos: []string{"photos/mug.jpg"}},
		{Name: "Футболка «Теремок»", Price: 80000, Photos: []string{"photos/shirt_front.jpg", "photos/shirt_back.jpg"}},
		{Name: "Магнит", Price: 15000, Photos: []string{"photos/magnet.jpg"}},
		{Name: "Открытки (набор)", Price: 20000},
		{Name: "Травяной чай", Price: 45000, Photos: []string{"photos/tea.jpg"}},
	})
}

// Get returns the item by display name.
func (c *Catalog) Get(name string) (model.CatalogItem, bool) {
	item, ok := c.items[name]
	return item, ok
}

// Items returns all items in catalog order.
func (c *Catalog) Items() []model.CatalogItem {
	result := make([]model.CatalogItem, 0, len(c.order))
	for _, name := range c.order {
		result = append(result, c.items[name])
	}
	return result
}
