// internal/catalog/catalog.go
package catalog

import "strings"

// Catalog is the keyed store of items. It owns no item lifecycle beyond
// add/remove; listing order is insertion order.
type Catalog struct {
	items map[string]*Item
	order []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{items: make(map[string]*Item)}
}

// AddItem stores the item under its ID. Re-adding an existing ID replaces the
// entry in place.
func (c *Catalog) AddItem(item *Item) {
	if _, ok := c.items[item.ID]; !ok {
		c.order = append(c.order, item.ID)
	}
	c.items[item.ID] = item
}

// RemoveItem deletes the item with the given ID, reporting whether it existed.
func (c *Catalog) RemoveItem(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for idx, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:idx], c.order[idx+1:]...)
			break
		}
	}
	return true
}

// GetItem returns the item with the given ID, or nil.
func (c *Catalog) GetItem(id string) *Item {
	return c.items[id]
}

// SearchByTitle returns items whose title contains the query,
// case-insensitively.
func (c *Catalog) SearchByTitle(query string) []*Item {
	q := strings.ToLower(query)
	var found []*Item
	for _, id := range c.order {
		item := c.items[id]
		if strings.Contains(strings.ToLower(item.Title), q) {
			found = append(found, item)
		}
	}
	return found
}

// AvailableItems lists items not currently checked out.
func (c *Catalog) AvailableItems() []*Item {
	var available []*Item
	for _, id := range c.order {
		if item := c.items[id]; item.Available() {
			available = append(available, item)
		}
	}
	return available
}

// CheckedOutItems lists items currently checked out.
func (c *Catalog) CheckedOutItems() []*Item {
	var out []*Item
	for _, id := range c.order {
		if item := c.items[id]; item.CheckedOut {
			out = append(out, item)
		}
	}
	return out
}

// CountByKind tallies items per variant. All kinds are present in the result,
// zero-valued when absent from the catalog.
func (c *Catalog) CountByKind() map[Kind]int {
	counts := map[Kind]int{
		KindBook:     0,
		KindMagazine: 0,
		KindDVD:      0,
	}
	for _, item := range c.items {
		counts[item.Kind]++
	}
	return counts
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}
