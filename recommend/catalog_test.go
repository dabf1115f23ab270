package recommend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenNestedSections(t *testing.T) {
	raw := []byte(`[
		{"category": [
			{"items": [
				{"name": "Apple MacBook Air", "price": 100000, "category": "laptop"},
				{"name": "Dell XPS 13", "price": 110000, "category": "laptop"}
			]},
			{"items": [
				{"name": "Samsung Galaxy S24", "price": 80000, "category": "mobile"}
			]}
		]},
		{"name": "Leather Wallet", "price": 1500, "image": "wallet.jpg", "description": "Handmade"}
	]`)

	products, err := Flatten(raw)
	require.NoError(t, err)
	require.Len(t, products, 4)
	assert.Equal(t, "Apple MacBook Air", products[0].Name)
	assert.Equal(t, "laptop", products[0].Category)
	assert.Equal(t, "Samsung Galaxy S24", products[2].Name)
	assert.Equal(t, "Leather Wallet", products[3].Name)
	assert.Equal(t, 1500.0, products[3].Price)
}

func TestFlattenRejectsMalformedJSON(t *testing.T) {
	_, err := Flatten([]byte("{not json"))
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Desk Lamp", "price": 900}]`), 0o644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Products, 1)
	assert.Equal(t, "Desk Lamp", catalog.Products[0].Name)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
