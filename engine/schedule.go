package engine

import (
	"time"

	"nexusmarket/models"
)

// Shipping timeline offsets, fixed at order placement.
const (
	shipAfterDays    = 2
	deliverAfterDays = 4
)

// Schedule holds the timestamps computed once when an order is placed.
type Schedule struct {
	ShippedDate        time.Time
	OutForDeliveryDate time.Time
	EstimatedDelivery  time.Time
}

// ScheduleFor computes the shipping timeline for an order placed at orderDate:
// shipped two days out during business hours, out for delivery on the fourth
// day in the morning, estimated delivery that afternoon or evening. The random
// time-of-day jitter stays within each window and is generated exactly once.
func (e *Engine) ScheduleFor(orderDate time.Time) Schedule {
	shipDay := orderDate.AddDate(0, 0, shipAfterDays)
	deliveryDay := orderDate.AddDate(0, 0, deliverAfterDays)

	return Schedule{
		ShippedDate:        e.randomTimeOfDay(shipDay, 9, 18),
		OutForDeliveryDate: e.randomTimeOfDay(deliveryDay, 8, 10),
		EstimatedDelivery:  e.randomTimeOfDay(deliveryDay, 14, 20),
	}
}

// Apply stamps the schedule and initial lifecycle state onto a fresh order.
func (s Schedule) Apply(order *models.Order) {
	order.Status = models.StatusProcessing
	order.ShippedDate = s.ShippedDate
	order.OutForDeliveryDate = s.OutForDeliveryDate
	order.EstimatedDelivery = s.EstimatedDelivery
	order.DeliveryOTP = ""
	order.OutForDeliveryEmailSent = false
	order.DeliveryConfirmationEmailSent = false
	order.ActualDeliveryDate = nil
}

// randomTimeOfDay places day's clock at a random instant with the hour drawn
// from [startHour, endHour] inclusive.
func (e *Engine) randomTimeOfDay(day time.Time, startHour, endHour int) time.Time {
	e.mu.Lock()
	hour := startHour + e.rng.Intn(endHour-startHour+1)
	minute := e.rng.Intn(60)
	e.mu.Unlock()
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
