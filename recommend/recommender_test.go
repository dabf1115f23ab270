package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/models"
)

func TestBrand(t *testing.T) {
	assert.Equal(t, "apple", Brand("Apple MacBook Air"))
	assert.Equal(t, "samsung", Brand("Samsung Galaxy S24"))
	assert.Equal(t, "", Brand(""))
}

func TestGender(t *testing.T) {
	assert.Equal(t, "male", Gender("Men's Running Shoes"))
	assert.Equal(t, "female", Gender("Women's Summer Dress"))
	assert.Equal(t, "female", Gender("Girls School Bag"))
	assert.Equal(t, "male", Gender("Boys Cotton T-Shirt"))
	assert.Equal(t, "unisex", Gender("Leather Wallet"))
}

func TestNameSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, NameSimilarity("Apple MacBook", "apple macbook"))
	assert.Zero(t, NameSimilarity("Apple MacBook", "Dell XPS"))
	assert.Zero(t, NameSimilarity("", "Dell XPS"))
	assert.InDelta(t, 1.0/3.0, NameSimilarity("Apple MacBook", "Apple iPhone"), 1e-9)
}

func TestForUserEmptyHistory(t *testing.T) {
	user := &models.User{}
	assert.Nil(t, ForUser(user, []models.Product{{Name: "Dell XPS", Category: "laptop"}}))
}

func TestForUserInteractedItemsLead(t *testing.T) {
	catalog := []models.Product{
		{Name: "Apple MacBook Pro", Category: "laptop", Price: 150000},
		{Name: "Apple MacBook Air", Category: "laptop", Price: 100000},
		{Name: "Dell XPS 13", Category: "laptop", Price: 110000},
	}
	user := &models.User{
		ViewedItems: []models.Product{{Name: "Apple MacBook Air", Category: "laptop", Price: 100000}},
	}

	recs := ForUser(user, catalog)
	require.NotEmpty(t, recs)
	assert.Equal(t, "Apple MacBook Air", recs[0].Name)

	// The viewed item itself is never recommended twice.
	count := 0
	for _, r := range recs {
		if r.Name == "Apple MacBook Air" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestForUserPrefersSameBrand(t *testing.T) {
	catalog := []models.Product{
		{Name: "Dell XPS 13", Category: "laptop", Price: 110000},
		{Name: "Apple MacBook Pro", Category: "laptop", Price: 105000},
	}
	user := &models.User{
		ViewedItems: []models.Product{{Name: "Apple MacBook Air", Category: "laptop", Price: 100000}},
	}

	recs := ForUser(user, catalog)
	require.Len(t, recs, 3)
	assert.Equal(t, "Apple MacBook Pro", recs[1].Name)
	assert.Equal(t, "Dell XPS 13", recs[2].Name)
}

func TestForUserGenderMatchForFashion(t *testing.T) {
	catalog := []models.Product{
		{Name: "Men's Leather Jacket", Category: "fashion", Price: 4000},
		{Name: "Women's Denim Jacket", Category: "fashion", Price: 4000},
	}
	user := &models.User{
		Wishlist: []models.Product{{Name: "Women's Winter Jacket", Category: "fashion", Price: 3500}},
	}

	recs := ForUser(user, catalog)
	require.Len(t, recs, 3)
	assert.Equal(t, "Women's Denim Jacket", recs[1].Name)
}

func TestForUserCartItemsCountAsInteractions(t *testing.T) {
	catalog := []models.Product{
		{Name: "Sony WH-1000XM5", Category: "headphones", Price: 30000},
	}
	user := &models.User{
		Cart: []models.CartItem{{Name: "Sony WF-1000XM5", Category: "headphones", Price: 20000}},
	}

	recs := ForUser(user, catalog)
	require.Len(t, recs, 2)
	assert.Equal(t, "Sony WF-1000XM5", recs[0].Name)
	assert.Equal(t, "Sony WH-1000XM5", recs[1].Name)
}

func TestForUserCapsAtLimit(t *testing.T) {
	var catalog []models.Product
	for i := 0; i < 300; i++ {
		catalog = append(catalog, models.Product{
			Name:     "Generic Gadget " + string(rune('A'+i%26)) + string(rune('a'+i/26)),
			Category: "gadgets",
			Price:    float64(100 + i),
		})
	}
	user := &models.User{
		ViewedItems: []models.Product{{Name: "Generic Gadget Hub", Category: "gadgets", Price: 150}},
	}

	recs := ForUser(user, catalog)
	assert.LessOrEqual(t, len(recs), 100)
}
