package workers

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexusmarket/engine"
	"nexusmarket/models"
)

type fakeStore struct {
	mu      sync.Mutex
	users   []models.User
	findErr error

	updates map[string]int
}

func newFakeStore(users ...models.User) *fakeStore {
	return &fakeStore{users: users, updates: make(map[string]int)}
}

func (f *fakeStore) FindUsersWithActiveOrders(ctx context.Context) ([]models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]models.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeStore) UpdateOrderState(ctx context.Context, phone string, orders []models.Order, delivered []models.DeliveredItem, rewardPoints int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[phone]++
	return nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return f.err
}

func activeUser(phone string, orderDate time.Time) models.User {
	return models.User{
		Name:  "Test User",
		Phone: phone,
		Email: phone + "@example.com",
		Orders: []models.Order{{
			OrderID:            "ord-" + phone,
			Status:             models.StatusProcessing,
			ConfirmationEmail:  phone + "@example.com",
			OrderDate:          orderDate,
			ShippedDate:        orderDate.AddDate(0, 0, 2),
			OutForDeliveryDate: orderDate.AddDate(0, 0, 4),
			EstimatedDelivery:  orderDate.AddDate(0, 0, 4).Add(8 * time.Hour),
			Items:              []models.OrderItem{{Name: "Keyboard", Price: 3000, PricePaid: 3000, Quantity: 1}},
		}},
	}
}

func testWorker(st *fakeStore, sender *fakeSender) *StatusWorker {
	eng := engine.NewWithRand(rand.New(rand.NewSource(1)))
	return NewStatusWorker(st, eng, sender, zap.NewNop(), time.Minute)
}

func TestRunOncePersistsOnlyChangedUsers(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := activeUser("9000000001", now.AddDate(0, 0, -3))
	notDue := activeUser("9000000002", now)

	st := newFakeStore(due, notDue)
	sender := &fakeSender{}
	w := testWorker(st, sender)
	w.now = func() time.Time { return now }

	w.RunOnce(context.Background())

	assert.Equal(t, 1, st.updates["9000000001"])
	assert.Zero(t, st.updates["9000000002"])
}

func TestRunOnceSendsNotificationThenPersists(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	user := activeUser("9000000001", now.AddDate(0, 0, -5))

	st := newFakeStore(user)
	sender := &fakeSender{}
	w := testWorker(st, sender)
	w.now = func() time.Time { return now }

	w.RunOnce(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "9000000001@example.com", sender.sent[0])
	assert.Equal(t, 1, st.updates["9000000001"])
}

func TestRunOnceEmailFailureDoesNotBlockPersistence(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	user := activeUser("9000000001", now.AddDate(0, 0, -5))

	st := newFakeStore(user)
	sender := &fakeSender{err: errors.New("smtp down")}
	w := testWorker(st, sender)
	w.now = func() time.Time { return now }

	w.RunOnce(context.Background())

	// The send failed but the state change, flags included, is still saved so
	// the email is never retried on the next cycle.
	assert.Equal(t, 1, st.updates["9000000001"])
}

func TestRunOnceSkipsNotificationWithoutRecipient(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	user := activeUser("9000000001", now.AddDate(0, 0, -5))
	user.Orders[0].ConfirmationEmail = ""

	st := newFakeStore(user)
	sender := &fakeSender{}
	w := testWorker(st, sender)
	w.now = func() time.Time { return now }

	w.RunOnce(context.Background())

	assert.Empty(t, sender.sent)
	assert.Equal(t, 1, st.updates["9000000001"])
}

func TestRunOnceFindErrorAborts(t *testing.T) {
	st := newFakeStore()
	st.findErr = errors.New("connection reset")
	sender := &fakeSender{}
	w := testWorker(st, sender)

	w.RunOnce(context.Background())

	assert.Empty(t, sender.sent)
	assert.Empty(t, st.updates)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	st := newFakeStore()
	w := testWorker(st, &fakeSender{})

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	w.Start(ctx, &wg)
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

func TestNewStatusWorkerDefaultsInterval(t *testing.T) {
	w := NewStatusWorker(newFakeStore(), engine.New(), &fakeSender{}, zap.NewNop(), 0)
	assert.Equal(t, DefaultInterval, w.interval)
}
