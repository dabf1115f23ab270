package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nexusmarket/models"
)

func TestPointsForUnitPriceTiers(t *testing.T) {
	cases := []struct {
		price  float64
		points int
	}{
		{100001, 50},
		{100000, 40},
		{50001, 40},
		{50000, 25},
		{25001, 25},
		{25000, 15},
		{10001, 15},
		{10000, 5},
		{5001, 5},
		{5000, 2},
		{1, 2},
		{0, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.points, PointsForUnitPrice(tc.price), "price %v", tc.price)
	}
}

func TestPointsFromHistoryUsesPaidPriceAndQuantity(t *testing.T) {
	items := []models.DeliveredItem{
		{Name: "Laptop", Price: 60000, PricePaid: 48000, Quantity: 1}, // discounted below the 50k tier
		{Name: "Earbuds", Price: 6000, PricePaid: 6000, Quantity: 2},
	}
	assert.Equal(t, 25+5*2, PointsFromHistory(items))
}

func TestPointsFromHistoryFallsBackToListPrice(t *testing.T) {
	items := []models.DeliveredItem{{Name: "Watch", Price: 12000}}
	// PricePaid and Quantity unset: list price, one unit.
	assert.Equal(t, 15, PointsFromHistory(items))
}

func TestPointsFromHistoryIsStable(t *testing.T) {
	items := []models.DeliveredItem{
		{Name: "Phone", PricePaid: 30000, Quantity: 1},
		{Name: "Case", PricePaid: 900, Quantity: 3},
	}
	first := PointsFromHistory(items)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, PointsFromHistory(items))
	}
}

func TestPointsFromHistoryEmpty(t *testing.T) {
	assert.Zero(t, PointsFromHistory(nil))
}
