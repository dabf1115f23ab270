// Package store owns access to the users collection. Each customer is a single
// document keyed by phone number; orders, cart, wishlist and delivered history
// are embedded arrays updated with document-level atomic operations.
package store

import (
	"context"
	"errors"

	"nexusmarket/models"
)

// ErrNotFound is returned when no user matches the given identifier.
var ErrNotFound = errors.New("store: user not found")

// UserStore is the surface the background status worker depends on.
type UserStore interface {
	// FindUsersWithActiveOrders returns every user owning at least one order
	// outside the terminal set.
	FindUsersWithActiveOrders(ctx context.Context) ([]models.User, error)

	// UpdateOrderState persists the order array, delivered history and reward
	// points for one user in a single atomic update. Last write wins; the
	// system tolerates read-then-write races on these arrays.
	UpdateOrderState(ctx context.Context, phone string, orders []models.Order, delivered []models.DeliveredItem, rewardPoints int) error
}
