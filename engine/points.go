package engine

import "nexusmarket/models"

// PointsForUnitPrice returns the reward points earned per unit at the given
// paid price. Tier boundaries are exclusive: a 5000 item earns 2, a 5001 item
// earns 5.
func PointsForUnitPrice(price float64) int {
	switch {
	case price > 100000:
		return 50
	case price > 50000:
		return 40
	case price > 25000:
		return 25
	case price > 10000:
		return 15
	case price > 5000:
		return 5
	default:
		return 2
	}
}

// PointsFromHistory recomputes the reward-point total from the full delivered
// history. The stored rewardPoints value on the user is only a cache of this:
// every user-data read recomputes and corrects it, so the history is always the
// source of truth even after returns or re-priced items.
func PointsFromHistory(items []models.DeliveredItem) int {
	total := 0
	for _, item := range items {
		total += PointsForUnitPrice(item.UnitPrice()) * item.Qty()
	}
	return total
}
