package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a line item inside an order.
type OrderItem struct {
	Name      string  `bson:"name" json:"name"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
	Category  string  `bson:"category,omitempty" json:"category,omitempty"`
	Price     float64 `bson:"price" json:"price"`
	PricePaid float64 `bson:"pricePaid,omitempty" json:"pricePaid,omitempty"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// UnitPrice returns the paid unit price, falling back to the list price when no
// discounted price was recorded.
func (i OrderItem) UnitPrice() float64 {
	if i.PricePaid > 0 {
		return i.PricePaid
	}
	return i.Price
}

// Qty returns the quantity, treating a missing value as a single unit.
func (i OrderItem) Qty() int {
	if i.Quantity < 1 {
		return 1
	}
	return i.Quantity
}

// ShippingAddress is the delivery address captured at checkout.
type ShippingAddress struct {
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Pincode string `bson:"pincode" json:"pincode"`
	Mobile  string `bson:"mobile" json:"mobile"`
}

// Order is embedded in the user document. The shipped/out-for-delivery/estimated
// timestamps are computed once at placement and never recomputed; they define when
// a transition becomes eligible, not when it happens.
type Order struct {
	OrderID            string      `bson:"orderId" json:"orderId"`
	Status             OrderStatus `bson:"status" json:"status"`
	ConfirmationEmail  string      `bson:"confirmationEmail" json:"confirmationEmail"`
	OrderDate          time.Time   `bson:"orderDate" json:"orderDate"`
	ShippedDate        time.Time   `bson:"shippedDate" json:"shippedDate"`
	OutForDeliveryDate time.Time   `bson:"outForDeliveryDate" json:"outForDeliveryDate"`
	EstimatedDelivery  time.Time   `bson:"estimatedDelivery" json:"estimatedDelivery"`
	ActualDeliveryDate *time.Time  `bson:"actualDeliveryDate,omitempty" json:"actualDeliveryDate,omitempty"`
	DeliveryOTP        string      `bson:"deliveryOTP,omitempty" json:"deliveryOTP,omitempty"`

	// Idempotency flags: each notification fires at most once per order no matter
	// how many times the transition check runs.
	OutForDeliveryEmailSent       bool `bson:"outForDeliveryEmailSent" json:"outForDeliveryEmailSent"`
	DeliveryConfirmationEmailSent bool `bson:"deliveryConfirmationEmailSent" json:"deliveryConfirmationEmailSent"`

	Items           []OrderItem     `bson:"items" json:"items"`
	TotalAmount     float64         `bson:"totalAmount" json:"totalAmount"`
	ShippingCost    float64         `bson:"shippingCost,omitempty" json:"shippingCost,omitempty"`
	ShippingAddress ShippingAddress `bson:"shippingAddress" json:"shippingAddress"`
}

// ReturnOTP is the pending-return verification state on a delivered item.
type ReturnOTP struct {
	Hash   string `bson:"hash" json:"-"`
	Reason string `bson:"reason" json:"reason"`
}

// Review is a customer review embedded on a delivered item.
type Review struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	ItemID      primitive.ObjectID `bson:"itemId" json:"itemId"`
	ProductName string             `bson:"productName" json:"productName"`
	Category    string             `bson:"category" json:"category"`
	Rating      int                `bson:"rating" json:"rating"`
	ReviewText  string             `bson:"reviewText" json:"reviewText"`
	Date        time.Time          `bson:"date" json:"date"`
}

// DeliveredItem is an order line moved into the user's history once the order
// reaches Delivered. It carries its own identity, independent of the order.
type DeliveredItem struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	OrderID      string             `bson:"orderId" json:"orderId"`
	Name         string             `bson:"name" json:"name"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Category     string             `bson:"category" json:"category"`
	Price        float64            `bson:"price" json:"price"`
	PricePaid    float64            `bson:"pricePaid,omitempty" json:"pricePaid,omitempty"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	DeliveryDate time.Time          `bson:"deliveryDate" json:"deliveryDate"`
	Reviewed     bool               `bson:"reviewed" json:"reviewed"`
	MyReview     *Review            `bson:"myReview,omitempty" json:"myReview,omitempty"`
	ReturnOTP    *ReturnOTP         `bson:"returnOTP,omitempty" json:"-"`
}

// UnitPrice returns the paid unit price, falling back to the list price.
func (d DeliveredItem) UnitPrice() float64 {
	if d.PricePaid > 0 {
		return d.PricePaid
	}
	return d.Price
}

// Qty returns the quantity, treating a missing value as a single unit.
func (d DeliveredItem) Qty() int {
	if d.Quantity < 1 {
		return 1
	}
	return d.Quantity
}
