package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nexusmarket/engine"
	"nexusmarket/models"
)

func sampleOrder() models.Order {
	return models.Order{
		OrderID:           "a1b2c3d4",
		Status:            models.StatusOutForDelivery,
		ConfirmationEmail: "priya@example.com",
		OrderDate:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		EstimatedDelivery: time.Date(2026, 3, 5, 16, 0, 0, 0, time.UTC),
		DeliveryOTP:       "483920",
		Items: []models.OrderItem{
			{Name: "Wireless Mouse", PricePaid: 1200, Quantity: 2},
		},
		TotalAmount: 2400,
		ShippingAddress: models.ShippingAddress{
			Name: "Priya Sharma", Address: "12 MG Road", City: "Bengaluru",
			State: "Karnataka", Pincode: "560001", Mobile: "9000000001",
		},
	}
}

func TestOutForDeliveryContainsOTP(t *testing.T) {
	subject, html := OutForDelivery(engine.Notification{
		Kind:     engine.NotifyOutForDelivery,
		UserName: "Priya",
		Order:    sampleOrder(),
	})
	assert.Contains(t, subject, "a1b2c3d4")
	assert.Contains(t, html, "483920")
	assert.Contains(t, html, "Priya")
}

func TestDeliveredContainsItemsAndPoints(t *testing.T) {
	subject, html := Delivered(engine.Notification{
		Kind:         engine.NotifyDelivered,
		UserName:     "Priya",
		Order:        sampleOrder(),
		PointsEarned: 4,
	})
	assert.Contains(t, subject, "a1b2c3d4")
	assert.Contains(t, html, "Wireless Mouse")
	assert.Contains(t, html, "4 Reward Points")
	assert.Contains(t, html, "2400.00")
	assert.Contains(t, html, "Bengaluru")
}

func TestRenderDispatchesByKind(t *testing.T) {
	ofd, _ := Render(engine.Notification{Kind: engine.NotifyOutForDelivery, Order: sampleOrder()})
	assert.Contains(t, ofd, "Out for Delivery")

	delivered, _ := Render(engine.Notification{Kind: engine.NotifyDelivered, Order: sampleOrder()})
	assert.Contains(t, delivered, "Delivered")

	unknown, html := Render(engine.Notification{Kind: "unknown"})
	assert.Empty(t, unknown)
	assert.Empty(t, html)
}

func TestOrderConfirmation(t *testing.T) {
	subject, html := OrderConfirmation(sampleOrder())
	assert.Contains(t, subject, "a1b2c3d4")
	assert.Contains(t, html, "Wireless Mouse")
	assert.Contains(t, html, "560001")
}

func TestCancellationListsItems(t *testing.T) {
	subject, html := Cancellation("Priya", sampleOrder())
	assert.Contains(t, subject, "cancelled")
	assert.Contains(t, html, "Wireless Mouse")
	assert.Contains(t, html, "Qty: 2")
}

func TestVerificationCode(t *testing.T) {
	subject, html := VerificationCode("Password Reset", "112233")
	assert.Contains(t, subject, "Password Reset")
	assert.Contains(t, html, "112233")
}

func TestReturnEmails(t *testing.T) {
	_, html := ReturnOTP("Wireless Mouse", "556677")
	assert.Contains(t, html, "556677")
	assert.Contains(t, html, "Wireless Mouse")

	subject, html := ReturnConfirmed("Priya", "Wireless Mouse", "Defective unit")
	assert.Contains(t, subject, "Wireless Mouse")
	assert.Contains(t, html, "Defective unit")
}

func TestSupportTicket(t *testing.T) {
	user := models.User{Name: "Priya", Email: "priya@example.com", Phone: "9000000001"}
	subject, html := SupportTicket(user, "Delivery Issue", "My package arrived damaged.")
	assert.Contains(t, subject, "Delivery Issue")
	assert.Contains(t, subject, "Priya")
	assert.Contains(t, html, "priya@example.com")
	assert.Contains(t, html, "My package arrived damaged.")
}
