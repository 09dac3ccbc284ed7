// Package session holds the per-session state of a shopping run: the
// cart, justification overrides, navigation, and the latest analysis.
// All state is scoped to one Session value; nothing here is process
// global, so concurrent shoppers each get their own Session.
package session

import (
	"fmt"

	"github.com/mindcart/mindcart/internal/catalog"
	"github.com/mindcart/mindcart/internal/common"
	"github.com/mindcart/mindcart/internal/model"
)

// CartStore is an ordered collection of cart entries. Entries are
// addressed by index, and indices shift on removal, so callers must
// re-fetch the snapshot after any mutation.
type CartStore struct {
	catalog *catalog.Catalog
	entries []model.CartEntry
}

// NewCartStore creates an empty cart over the given catalog.
func NewCartStore(cat *catalog.Catalog) *CartStore {
	return &CartStore{catalog: cat}
}

// Add appends an item to the cart. The item must exist in the catalog.
func (c *CartStore) Add(itemID, reason string) error {
	if !c.catalog.Has(itemID) {
		return fmt.Errorf("%w: %s", common.ErrUnknownItem, itemID)
	}
	c.entries = append(c.entries, model.CartEntry{ItemID: itemID, Reason: reason})
	return nil
}

// UpdateReason replaces the shopper-supplied reason at the given index.
func (c *CartStore) UpdateReason(index int, reason string) error {
	if index < 0 || index >= len(c.entries) {
		return fmt.Errorf("%w: %d", common.ErrIndexOutOfRange, index)
	}
	c.entries[index].Reason = reason
	return nil
}

// Remove deletes the entry at the given index.
func (c *CartStore) Remove(index int) error {
	if index < 0 || index >= len(c.entries) {
		return fmt.Errorf("%w: %d", common.ErrIndexOutOfRange, index)
	}
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return nil
}

// Clear removes all entries.
func (c *CartStore) Clear() {
	c.entries = nil
}

// Len returns the number of entries in the cart.
func (c *CartStore) Len() int {
	return len(c.entries)
}

// Snapshot returns a read-only copy of the cart in insertion order.
func (c *CartStore) Snapshot() []model.CartEntry {
	out := make([]model.CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// TotalValue sums the catalog prices of every entry currently in the
// cart. Entries missing from the catalog contribute zero.
func (c *CartStore) TotalValue() float64 {
	total := 0.0
	for _, entry := range c.entries {
		if catEntry, err := c.catalog.Get(entry.ItemID); err == nil {
			total += catEntry.UnitPrice
		}
	}
	return total
}
