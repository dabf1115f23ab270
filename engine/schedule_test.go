package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nexusmarket/models"
)

func TestScheduleForWindows(t *testing.T) {
	orderDate := time.Date(2026, 3, 1, 12, 34, 0, 0, time.UTC)

	for seed := int64(0); seed < 50; seed++ {
		eng := NewWithRand(rand.New(rand.NewSource(seed)))
		s := eng.ScheduleFor(orderDate)

		assert.Equal(t, orderDate.AddDate(0, 0, 2).Truncate(24*time.Hour), s.ShippedDate.Truncate(24*time.Hour))
		assert.GreaterOrEqual(t, s.ShippedDate.Hour(), 9)
		assert.LessOrEqual(t, s.ShippedDate.Hour(), 18)

		deliveryDay := orderDate.AddDate(0, 0, 4)
		assert.Equal(t, deliveryDay.Day(), s.OutForDeliveryDate.Day())
		assert.GreaterOrEqual(t, s.OutForDeliveryDate.Hour(), 8)
		assert.LessOrEqual(t, s.OutForDeliveryDate.Hour(), 10)

		assert.Equal(t, deliveryDay.Day(), s.EstimatedDelivery.Day())
		assert.GreaterOrEqual(t, s.EstimatedDelivery.Hour(), 14)
		assert.LessOrEqual(t, s.EstimatedDelivery.Hour(), 20)

		assert.True(t, s.OutForDeliveryDate.Before(s.EstimatedDelivery))
	}
}

func TestScheduleApplyResetsLifecycleState(t *testing.T) {
	eng := NewWithRand(rand.New(rand.NewSource(7)))
	s := eng.ScheduleFor(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	stale := time.Now()
	order := models.Order{
		Status:                        models.StatusDelivered,
		DeliveryOTP:                   "999999",
		OutForDeliveryEmailSent:       true,
		DeliveryConfirmationEmailSent: true,
		ActualDeliveryDate:            &stale,
	}
	s.Apply(&order)

	assert.Equal(t, models.StatusProcessing, order.Status)
	assert.Equal(t, s.ShippedDate, order.ShippedDate)
	assert.Equal(t, s.OutForDeliveryDate, order.OutForDeliveryDate)
	assert.Equal(t, s.EstimatedDelivery, order.EstimatedDelivery)
	assert.Empty(t, order.DeliveryOTP)
	assert.False(t, order.OutForDeliveryEmailSent)
	assert.False(t, order.DeliveryConfirmationEmailSent)
	assert.Nil(t, order.ActualDeliveryDate)
}
