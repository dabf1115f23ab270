// Package workers contains the background jobs that run alongside the HTTP
// server.
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"nexusmarket/engine"
	"nexusmarket/mailer"
	"nexusmarket/models"
	"nexusmarket/store"
)

// DefaultInterval is how often active orders are re-checked.
const DefaultInterval = 30 * time.Minute

// StatusWorker polls for users with active orders, advances their order state
// machines and dispatches the resulting notification emails. Each user is
// processed independently: a store or email failure for one user never affects
// the rest of the batch.
type StatusWorker struct {
	store    store.UserStore
	engine   *engine.Engine
	sender   mailer.Sender
	logger   *zap.Logger
	interval time.Duration

	now func() time.Time
}

// NewStatusWorker builds the worker. A non-positive interval falls back to the
// default cadence.
func NewStatusWorker(st store.UserStore, eng *engine.Engine, sender mailer.Sender, logger *zap.Logger, interval time.Duration) *StatusWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &StatusWorker{
		store:    st,
		engine:   eng,
		sender:   sender,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs the polling loop until ctx is cancelled.
func (w *StatusWorker) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info("order status worker started", zap.Duration("interval", w.interval))
		for {
			select {
			case <-ticker.C:
				w.RunOnce(ctx)
			case <-ctx.Done():
				w.logger.Info("order status worker stopping")
				return
			}
		}
	}()
}

// RunOnce performs a single pass over every user with active orders. Users are
// advanced concurrently; nothing is shared between them.
func (w *StatusWorker) RunOnce(ctx context.Context) {
	users, err := w.store.FindUsersWithActiveOrders(ctx)
	if err != nil {
		w.logger.Error("loading users with active orders failed", zap.Error(err))
		return
	}
	if len(users) == 0 {
		return
	}
	w.logger.Info("checking active orders", zap.Int("users", len(users)))

	now := w.now()
	var wg sync.WaitGroup
	for i := range users {
		user := &users[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.processUser(ctx, user, now)
		}()
	}
	wg.Wait()
}

func (w *StatusWorker) processUser(ctx context.Context, user *models.User, now time.Time) {
	changed, notifications := w.engine.Advance(user, now)
	if !changed {
		return
	}

	// Send flags were already set by the engine, so delivery is at-most-once:
	// a transient failure here is logged and never retried for this order.
	for _, n := range notifications {
		if n.To == "" {
			w.logger.Warn("skipping notification without recipient",
				zap.String("phone", user.Phone), zap.String("order", n.Order.OrderID))
			continue
		}
		subject, html := mailer.Render(n)
		if err := w.sender.Send(ctx, n.To, subject, html); err != nil {
			w.logger.Error("sending order notification failed",
				zap.String("to", n.To),
				zap.String("order", n.Order.OrderID),
				zap.String("kind", string(n.Kind)),
				zap.Error(err))
		}
	}

	if err := w.store.UpdateOrderState(ctx, user.Phone, user.Orders, user.DeliveredItems, user.RewardPoints); err != nil {
		w.logger.Error("persisting order state failed",
			zap.String("phone", user.Phone), zap.Error(err))
		return
	}
	w.logger.Info("order state updated",
		zap.String("phone", user.Phone), zap.Int("notifications", len(notifications)))
}
