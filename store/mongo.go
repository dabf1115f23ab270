package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"nexusmarket/models"
)

// Connect opens a MongoDB client and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return client, nil
}

// Mongo implements UserStore over the users collection.
type Mongo struct {
	users *mongo.Collection
}

// NewMongo returns a store backed by the given users collection.
func NewMongo(users *mongo.Collection) *Mongo {
	return &Mongo{users: users}
}

// Collection exposes the underlying collection for the request controllers,
// which issue their own positional-array updates.
func (m *Mongo) Collection() *mongo.Collection {
	return m.users
}

// FindByPhone loads one user document.
func (m *Mongo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"phone": phone}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", phone, err)
	}
	return &user, nil
}

// FindUsersWithActiveOrders returns every user with at least one order whose
// status is outside the terminal set.
func (m *Mongo) FindUsersWithActiveOrders(ctx context.Context) ([]models.User, error) {
	filter := bson.M{"orders.status": bson.M{"$nin": models.TerminalStatuses()}}
	cursor, err := m.users.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("querying active orders: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding active-order users: %w", err)
	}
	return users, nil
}

// UpdateRecommendations replaces the user's stored recommendation list.
func (m *Mongo) UpdateRecommendations(ctx context.Context, phone string, recs []models.Product) error {
	if recs == nil {
		recs = []models.Product{}
	}
	_, err := m.users.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{
		"$set": bson.M{"recommendations": recs},
	})
	if err != nil {
		return fmt.Errorf("updating recommendations for %s: %w", phone, err)
	}
	return nil
}

// UpdateOrderState persists order lifecycle state for one user.
func (m *Mongo) UpdateOrderState(ctx context.Context, phone string, orders []models.Order, delivered []models.DeliveredItem, rewardPoints int) error {
	if orders == nil {
		orders = []models.Order{}
	}
	if delivered == nil {
		delivered = []models.DeliveredItem{}
	}
	_, err := m.users.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{
		"$set": bson.M{
			"orders":         orders,
			"deliveredItems": delivered,
			"rewardPoints":   rewardPoints,
		},
	})
	if err != nil {
		return fmt.Errorf("updating order state for %s: %w", phone, err)
	}
	return nil
}
