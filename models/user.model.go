package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. The same shape is reused for wishlist, viewed
// history and recommendation entries on the user document.
type Product struct {
	Name        string  `bson:"name" json:"name"`
	Category    string  `bson:"category,omitempty" json:"category,omitempty"`
	Price       float64 `bson:"price" json:"price"`
	Image       string  `bson:"image,omitempty" json:"image,omitempty"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// DiscountVerification holds a pending student-discount code on a cart item.
type DiscountVerification struct {
	Code string `bson:"code" json:"-"`
}

// CartItem is a product placed in the cart, plus quantity and any discount or
// bank-offer state attached at checkout time.
type CartItem struct {
	Name            string                `bson:"name" json:"name"`
	Category        string                `bson:"category,omitempty" json:"category,omitempty"`
	Price           float64               `bson:"price" json:"price"`
	PricePaid       float64               `bson:"pricePaid,omitempty" json:"pricePaid,omitempty"`
	Image           string                `bson:"image,omitempty" json:"image,omitempty"`
	Quantity        int                   `bson:"quantity" json:"quantity"`
	Discount        float64               `bson:"discount,omitempty" json:"discount,omitempty"`
	Verification    *DiscountVerification `bson:"verification,omitempty" json:"-"`
	SelectedOfferID string                `bson:"selectedOfferId,omitempty" json:"selectedOfferId,omitempty"`
	AccountNumber   string                `bson:"accountNumber,omitempty" json:"accountNumber,omitempty"`
}

// Address is the user's saved delivery address.
type Address struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Pincode string `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Mobile  string `bson:"mobile,omitempty" json:"mobile,omitempty"`
}

// User is the aggregate root: one document per customer, keyed by phone number,
// owning cart, wishlist, orders and delivered-item history.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Phone           string             `bson:"phone" json:"phone"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	ProfileImage    string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Address         Address            `bson:"address" json:"address"`
	ResetOTPHash    string             `bson:"resetOtpHash,omitempty" json:"-"`
	RewardPoints    int                `bson:"rewardPoints" json:"rewardPoints"`
	Wishlist        []Product          `bson:"wishlist" json:"wishlist"`
	Cart            []CartItem         `bson:"cart" json:"cart"`
	Orders          []Order            `bson:"orders" json:"orders"`
	ViewedItems     []Product          `bson:"viewedItems" json:"viewedItems"`
	Recommendations []Product          `bson:"recommendations" json:"recommendations"`
	DeliveredItems  []DeliveredItem    `bson:"deliveredItems" json:"deliveredItems"`
}
