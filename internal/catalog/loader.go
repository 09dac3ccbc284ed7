package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mindcart/mindcart/internal/model"
)

// catalogFile is the YAML schema for catalog files.
type catalogFile struct {
	Items []catalogItem `yaml:"items"`
}

type catalogItem struct {
	ID       string  `yaml:"id"`
	Category string  `yaml:"category"`
	Price    float64 `yaml:"price"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from user config
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	entries := make([]model.CatalogEntry, 0, len(file.Items))
	for _, item := range file.Items {
		category, err := model.ParseCategory(item.Category)
		if err != nil {
			return nil, fmt.Errorf("catalog file entry %q: %w", item.ID, err)
		}
		entries = append(entries, model.CatalogEntry{
			ID:        item.ID,
			Category:  category,
			UnitPrice: item.Price,
		})
	}

	return New(entries)
}
