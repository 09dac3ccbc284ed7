package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindcart/mindcart/internal/common"
	"github.com/mindcart/mindcart/internal/model"
)

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]model.CatalogEntry{
		{ID: "milk", Category: model.CategoryEssential, UnitPrice: 60},
		{ID: "milk", Category: model.CategoryTreat, UnitPrice: 70},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate catalog entry")
}

func TestNew_RejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry model.CatalogEntry
	}{
		{name: "missing id", entry: model.CatalogEntry{Category: model.CategoryTreat, UnitPrice: 10}},
		{name: "bad category", entry: model.CatalogEntry{ID: "x", Category: "Frivolous", UnitPrice: 10}},
		{name: "negative price", entry: model.CatalogEntry{ID: "x", Category: model.CategoryTreat, UnitPrice: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]model.CatalogEntry{tt.entry})
			assert.Error(t, err)
		})
	}
}

func TestGet_UnknownItem(t *testing.T) {
	cat := Default()

	_, err := cat.Get("flying-carpet")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnknownItem))
}

func TestDefault_Coverage(t *testing.T) {
	cat := Default()

	require.NotEmpty(t, cat.Items())

	// Every category should be represented in the demo catalog.
	seen := make(map[model.Category]bool)
	for _, item := range cat.Items() {
		seen[item.Category] = true
	}
	for _, category := range model.AllCategories() {
		assert.True(t, seen[category], "category %s missing from default catalog", category)
	}

	entry, err := cat.Get("teddy-bear")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryImpulse, entry.Category)
	assert.InDelta(t, 1200.0, entry.UnitPrice, 0.001)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	content := `items:
  - id: milk
    category: Essential
    price: 60
  - id: teddy-bear
    category: Impulse
    price: 1200
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cat.Items(), 2)

	entry, err := cat.Get("milk")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryEssential, entry.Category)
}

func TestLoad_UnknownCategory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	content := `items:
  - id: gadget
    category: Shiny
    price: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
