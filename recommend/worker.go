package recommend

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"nexusmarket/models"
)

// UserSource is the store surface the refresh worker needs.
type UserSource interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	UpdateRecommendations(ctx context.Context, phone string, recs []models.Product) error
}

// Worker refreshes user recommendation lists off the request path. Refreshes
// are fire-and-forget: a request enqueues the user's phone number and moves
// on, and a dropped refresh is recovered by the next mutation.
type Worker struct {
	store   UserSource
	catalog *Catalog
	logger  *zap.Logger
	queue   chan string
}

// NewWorker returns a refresh worker with a bounded queue.
func NewWorker(store UserSource, catalog *Catalog, logger *zap.Logger) *Worker {
	return &Worker{
		store:   store,
		catalog: catalog,
		logger:  logger,
		queue:   make(chan string, 256),
	}
}

// Enqueue requests a refresh for the given user. Never blocks; when the queue
// is full the request is dropped.
func (w *Worker) Enqueue(phone string) {
	select {
	case w.queue <- phone:
	default:
		w.logger.Warn("recommendation queue full, dropping refresh", zap.String("phone", phone))
	}
}

// Start consumes the queue until ctx is cancelled, draining what remains on
// shutdown.
func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.logger.Info("recommendation worker started")
		for {
			select {
			case phone := <-w.queue:
				w.refresh(ctx, phone)
			case <-ctx.Done():
				for {
					select {
					case phone := <-w.queue:
						w.refresh(context.Background(), phone)
					default:
						w.logger.Info("recommendation worker stopped")
						return
					}
				}
			}
		}
	}()
}

func (w *Worker) refresh(ctx context.Context, phone string) {
	user, err := w.store.FindByPhone(ctx, phone)
	if err != nil {
		w.logger.Warn("recommendation refresh: loading user failed",
			zap.String("phone", phone), zap.Error(err))
		return
	}

	recs := ForUser(user, w.catalog.Products)
	if err := w.store.UpdateRecommendations(ctx, phone, recs); err != nil {
		w.logger.Warn("recommendation refresh: saving failed",
			zap.String("phone", phone), zap.Error(err))
		return
	}
	w.logger.Debug("recommendations refreshed",
		zap.String("phone", phone), zap.Int("count", len(recs)))
}
