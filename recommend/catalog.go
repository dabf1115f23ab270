// Package recommend builds per-user product recommendations from the static
// catalog and refreshes them asynchronously after cart/wishlist mutations.
package recommend

import (
	"encoding/json"
	"fmt"
	"os"

	"nexusmarket/models"
)

// Catalog is the flattened, read-only product list loaded at startup.
type Catalog struct {
	Products []models.Product
}

// catalogSection mirrors one entry of the products file, which mixes two
// shapes: category sections holding item groups, and bare product records.
type catalogSection struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category []struct {
		Items []models.Product `json:"items"`
	} `json:"category"`
	ItemCategory string `json:"-"`
	Image        string `json:"image"`
	Description  string `json:"description"`
}

// LoadCatalog reads and flattens the products file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading product catalog: %w", err)
	}
	products, err := Flatten(raw)
	if err != nil {
		return nil, err
	}
	return &Catalog{Products: products}, nil
}

// Flatten converts the nested [{category:[{items:[...]}]}] structure into a
// flat product list. Bare product entries at the top level are kept as-is.
func Flatten(raw []byte) ([]models.Product, error) {
	var sections []catalogSection
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("parsing product catalog: %w", err)
	}

	var flat []models.Product
	for _, section := range sections {
		if len(section.Category) > 0 {
			for _, group := range section.Category {
				flat = append(flat, group.Items...)
			}
			continue
		}
		if section.Name != "" {
			flat = append(flat, models.Product{
				Name:        section.Name,
				Price:       section.Price,
				Image:       section.Image,
				Description: section.Description,
			})
		}
	}
	return flat, nil
}
