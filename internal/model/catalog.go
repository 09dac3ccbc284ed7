// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// Category classifies a catalog item by purchase necessity.
type Category string

// Catalog categories.
const (
	CategoryEssential Category = "Essential"
	CategoryTreat     Category = "Treat"
	CategoryLuxury    Category = "Luxury"
	CategoryImpulse   Category = "Impulse"
)

// AllCategories lists every category in display order.
func AllCategories() []Category {
	return []Category{CategoryEssential, CategoryTreat, CategoryLuxury, CategoryImpulse}
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryEssential, CategoryTreat, CategoryLuxury, CategoryImpulse:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category: %q", s)
	}
}

// CatalogEntry describes a purchasable item. Entries are immutable and
// loaded at process start.
type CatalogEntry struct {
	ID        string
	Category  Category
	UnitPrice float64
}

// Validate checks the entry against the catalog schema.
func (e CatalogEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("catalog entry id is required")
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return fmt.Errorf("catalog entry %q: %w", e.ID, err)
	}
	if e.UnitPrice < 0 {
		return fmt.Errorf("catalog entry %q: price must be non-negative, got %.2f", e.ID, e.UnitPrice)
	}
	return nil
}
