// Package engine computes order status transitions. It performs no I/O: the
// caller supplies the clock and persists whatever changed.
package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nexusmarket/models"
)

// DeliveryBuffer is the simulated transit time between an order going out for
// delivery and arriving.
const DeliveryBuffer = 4 * time.Hour

// NotificationKind identifies which transactional email a transition produced.
type NotificationKind string

const (
	NotifyOutForDelivery NotificationKind = "out_for_delivery"
	NotifyDelivered      NotificationKind = "delivered"
)

// Notification is an email event produced by a transition. The order is a
// snapshot taken at emit time, so later mutations don't leak into the message.
type Notification struct {
	Kind         NotificationKind
	To           string
	UserName     string
	Order        models.Order
	PointsEarned int
}

// Engine advances order state machines. Safe for concurrent use.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an engine seeded from the current time.
func New() *Engine {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand returns an engine using the given source of randomness. Tests
// pass a fixed seed to make OTP and jitter generation deterministic.
func NewWithRand(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Advance walks every non-terminal order on the user and applies whichever
// transitions have become eligible at now, mutating the user in place. It
// returns whether anything changed and the notifications to dispatch. Flags on
// the order, not timestamps, gate each notification, so a late run after missed
// cycles still fires each one exactly once.
//
// An order entering Out for Delivery is not considered for Delivered in the
// same pass: the intermediate status must be observable for at least one cycle.
func (e *Engine) Advance(user *models.User, now time.Time) (changed bool, notifications []Notification) {
	if user.RewardPoints < 0 {
		user.RewardPoints = 0
	}
	if len(user.Orders) == 0 {
		return false, nil
	}

	var delivered []models.DeliveredItem

	for i := range user.Orders {
		order := &user.Orders[i]

		if order.Status.IsTerminal() {
			continue
		}
		// Orders with missing schedule data cannot be advanced safely.
		if order.ShippedDate.IsZero() || order.OutForDeliveryDate.IsZero() {
			continue
		}

		if order.Status == models.StatusProcessing && !now.Before(order.ShippedDate) {
			order.Status = models.StatusShipped
			changed = true
		}

		if !now.Before(order.OutForDeliveryDate) &&
			order.Status != models.StatusDelivered && order.Status != models.StatusOutForDelivery {
			order.Status = models.StatusOutForDelivery
			changed = true

			if order.DeliveryOTP == "" {
				order.DeliveryOTP = e.sixDigitCode()
			}
			if !order.OutForDeliveryEmailSent {
				order.OutForDeliveryEmailSent = true
				notifications = append(notifications, Notification{
					Kind:     NotifyOutForDelivery,
					To:       order.ConfirmationEmail,
					UserName: user.Name,
					Order:    *order,
				})
			}
			// Stop here for this pass; the delivered check runs next cycle.
			continue
		}

		deliverAt := order.OutForDeliveryDate.Add(DeliveryBuffer)
		if order.Status == models.StatusOutForDelivery && !now.Before(deliverAt) &&
			!order.DeliveryConfirmationEmailSent {

			order.Status = models.StatusDelivered
			at := now
			order.ActualDeliveryDate = &at
			order.DeliveryConfirmationEmailSent = true
			changed = true

			points := 0
			for _, item := range order.Items {
				points += PointsForUnitPrice(item.UnitPrice()) * item.Qty()

				category := item.Category
				if category == "" {
					category = "General"
				}
				delivered = append(delivered, models.DeliveredItem{
					ID:           primitive.NewObjectID(),
					OrderID:      order.OrderID,
					Name:         item.Name,
					Image:        item.Image,
					Category:     category,
					Price:        item.Price,
					PricePaid:    item.PricePaid,
					Quantity:     item.Quantity,
					DeliveryDate: now,
					Reviewed:     false,
				})
			}
			if points > 0 {
				user.RewardPoints += points
			}

			notifications = append(notifications, Notification{
				Kind:         NotifyDelivered,
				To:           order.ConfirmationEmail,
				UserName:     user.Name,
				Order:        *order,
				PointsEarned: points,
			})
		}
	}

	if len(delivered) > 0 {
		// Newest deliveries first, matching how the history is displayed.
		user.DeliveredItems = append(delivered, user.DeliveredItems...)
		changed = true
	}

	return changed, notifications
}

func (e *Engine) sixDigitCode() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fmt.Sprintf("%06d", 100000+e.rng.Intn(900000))
}
