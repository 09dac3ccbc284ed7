// Package catalog provides the static item catalog the cart draws from.
package catalog

import (
	"fmt"

	"github.com/mindcart/mindcart/internal/common"
	"github.com/mindcart/mindcart/internal/model"
)

// Catalog is an immutable lookup table of purchasable items.
type Catalog struct {
	byID  map[string]model.CatalogEntry
	items []model.CatalogEntry
}

// New builds a catalog from the given entries. Entries are validated
// and identifiers must be unique.
func New(entries []model.CatalogEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one entry")
	}

	byID := make(map[string]model.CatalogEntry, len(entries))
	items := make([]model.CatalogEntry, 0, len(entries))

	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byID[entry.ID]; exists {
			return nil, fmt.Errorf("duplicate catalog entry: %q", entry.ID)
		}
		byID[entry.ID] = entry
		items = append(items, entry)
	}

	return &Catalog{byID: byID, items: items}, nil
}

// Get returns the entry for the given identifier.
func (c *Catalog) Get(id string) (model.CatalogEntry, error) {
	entry, ok := c.byID[id]
	if !ok {
		return model.CatalogEntry{}, fmt.Errorf("%w: %q", common.ErrUnknownItem, id)
	}
	return entry, nil
}

// Has reports whether the identifier exists in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Items returns all entries in load order.
func (c *Catalog) Items() []model.CatalogEntry {
	out := make([]model.CatalogEntry, len(c.items))
	copy(out, c.items)
	return out
}

// Default returns the built-in demo catalog.
func Default() *Catalog {
	entries := []model.CatalogEntry{
		{ID: "milk", Category: model.CategoryEssential, UnitPrice: 60},
		{ID: "apples", Category: model.CategoryEssential, UnitPrice: 120},
		{ID: "coffee", Category: model.CategoryEssential, UnitPrice: 150},
		{ID: "shampoo", Category: model.CategoryEssential, UnitPrice: 250},
		{ID: "t-shirt", Category: model.CategoryEssential, UnitPrice: 800},
		{ID: "running-shoes", Category: model.CategoryEssential, UnitPrice: 3500},
		{ID: "popcorn", Category: model.CategoryTreat, UnitPrice: 100},
		{ID: "cupcakes", Category: model.CategoryTreat, UnitPrice: 200},
		{ID: "chocolate-cake", Category: model.CategoryTreat, UnitPrice: 350},
		{ID: "pizza", Category: model.CategoryTreat, UnitPrice: 450},
		{ID: "smartwatch", Category: model.CategoryLuxury, UnitPrice: 15000},
		{ID: "gaming-console", Category: model.CategoryLuxury, UnitPrice: 50000},
		{ID: "phone-case", Category: model.CategoryImpulse, UnitPrice: 500},
		{ID: "lipstick", Category: model.CategoryImpulse, UnitPrice: 800},
		{ID: "teddy-bear", Category: model.CategoryImpulse, UnitPrice: 1200},
	}

	cat, err := New(entries)
	if err != nil {
		// The built-in catalog is validated by tests; a failure here is a bug.
		panic(fmt.Sprintf("invalid built-in catalog: %v", err))
	}
	return cat
}
