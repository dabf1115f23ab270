package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"nexusmarket/mailer"
	"nexusmarket/middleware"
	"nexusmarket/models"
	"nexusmarket/recommend"
)

const (
	studentDiscountPercent = 10
	studentDiscountLimit   = 5
)

// CartController handles cart, wishlist, discount and offer requests.
type CartController struct {
	Users       *mongo.Collection
	Sender      mailer.Sender
	Recommender *recommend.Worker
	Logger      *zap.Logger
}

// NewCartController creates a new CartController.
func NewCartController(users *mongo.Collection, sender mailer.Sender, rec *recommend.Worker, logger *zap.Logger) *CartController {
	return &CartController{Users: users, Sender: sender, Recommender: rec, Logger: logger}
}

// AddToCart adds a product to the cart, incrementing the quantity when the
// product is already present.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		Product models.CartItem `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Product.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Product data is required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := cc.Users.FindOne(ctx, bson.M{"phone": phone, "cart.name": req.Product.Name}).Err()
	if err == nil {
		_, err = cc.Users.UpdateOne(ctx,
			bson.M{"phone": phone, "cart.name": req.Product.Name},
			bson.M{"$inc": bson.M{"cart.$.quantity": 1}})
	} else if err == mongo.ErrNoDocuments {
		req.Product.Quantity = 1
		_, err = cc.Users.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{"$push": bson.M{"cart": req.Product}})
	}
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error updating cart")
		return
	}

	cc.Recommender.Enqueue(phone)
	respondSuccess(w, "Cart updated")
}

// UpdateCartQuantity sets a cart line's quantity, removing the line when the
// quantity drops below one.
func (cc *CartController) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		ProductName string `json:"productName"`
		NewQuantity int    `json:"newQuantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductName == "" {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if req.NewQuantity < 1 {
		if _, err := cc.Users.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{"$pull": bson.M{"cart": bson.M{"name": req.ProductName}}}); err != nil {
			respondMessage(w, http.StatusInternalServerError, "Server error updating quantity")
			return
		}
		cc.Recommender.Enqueue(phone)
	} else {
		_, err := cc.Users.UpdateOne(ctx,
			bson.M{"phone": phone, "cart.name": req.ProductName},
			bson.M{"$set": bson.M{"cart.$.quantity": req.NewQuantity}})
		if err != nil {
			respondMessage(w, http.StatusInternalServerError, "Server error updating quantity")
			return
		}
	}
	respondSuccess(w, "Quantity updated")
}

// RemoveFromCart removes one product from the cart.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		ProductName string `json:"productName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductName == "" {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := cc.Users.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{"$pull": bson.M{"cart": bson.M{"name": req.ProductName}}}); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error removing item")
		return
	}

	cc.Recommender.Enqueue(phone)
	respondSuccess(w, "Item removed from cart")
}

// ToggleWishlist adds the product to the wishlist, or removes it when already
// present.
func (cc *CartController) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		Product models.Product `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Product.Name == "" {
		respondMessage(w, http.StatusBadRequest, "Product data is required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := cc.Users.FindOne(ctx, bson.M{"phone": phone}).Decode(&user); err != nil {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	inWishlist := false
	for _, item := range user.Wishlist {
		if item.Name == req.Product.Name {
			inWishlist = true
			break
		}
	}

	var update bson.M
	if inWishlist {
		update = bson.M{"$pull": bson.M{"wishlist": bson.M{"name": req.Product.Name}}}
	} else {
		update = bson.M{"$addToSet": bson.M{"wishlist": req.Product}}
	}
	if _, err := cc.Users.UpdateOne(ctx, bson.M{"phone": phone}, update); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error updating wishlist")
		return
	}

	cc.Recommender.Enqueue(phone)
	respondSuccess(w, "Wishlist updated")
}

// RequestDiscountCode emails a student-discount verification code for one cart
// item. At most five cart items may carry the discount.
func (cc *CartController) RequestDiscountCode(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		StudentEmail string `json:"studentEmail"`
		ProductName  string `json:"productName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StudentEmail == "" || req.ProductName == "" {
		respondMessage(w, http.StatusBadRequest, "Missing required information.")
		return
	}
	if !strings.HasSuffix(req.StudentEmail, ".edu.in") {
		respondMessage(w, http.StatusBadRequest, "Please enter a valid .edu.in college email.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := cc.Users.FindOne(ctx, bson.M{"phone": phone}).Decode(&user); err != nil {
		respondMessage(w, http.StatusNotFound, "Authenticated user not found in database.")
		return
	}

	var inCart *models.CartItem
	discounted := 0
	for i := range user.Cart {
		if user.Cart[i].Discount > 0 {
			discounted++
		}
		if user.Cart[i].Name == req.ProductName {
			inCart = &user.Cart[i]
		}
	}
	if inCart == nil {
		respondMessage(w, http.StatusNotFound, "Product not found in your cart.")
		return
	}
	if inCart.Discount > 0 {
		respondMessage(w, http.StatusBadRequest, "Discount is already applied to this item.")
		return
	}
	if discounted >= studentDiscountLimit {
		respondMessage(w, http.StatusBadRequest, "Student discount limit of 5 products reached.")
		return
	}

	code := randomCode()
	_, err := cc.Users.UpdateOne(ctx,
		bson.M{"phone": phone, "cart.name": req.ProductName},
		bson.M{"$set": bson.M{"cart.$.verification": bson.M{"code": code}}})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to send verification code.")
		return
	}

	subject, html := mailer.DiscountCode(req.ProductName, code)
	if err := cc.Sender.Send(ctx, req.StudentEmail, subject, html); err != nil {
		cc.Logger.Error("sending discount code failed", zap.String("email", req.StudentEmail), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Failed to send verification code.")
		return
	}

	respondMessage(w, http.StatusOK, "A verification code was sent to "+req.StudentEmail+".")
}

// VerifyDiscountCode redeems a student-discount code and applies the discount
// to the cart item.
func (cc *CartController) VerifyDiscountCode(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		VerificationCode string `json:"verificationCode"`
		ProductName      string `json:"productName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VerificationCode == "" || req.ProductName == "" {
		respondMessage(w, http.StatusBadRequest, "Missing required information.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := cc.Users.FindOne(ctx, bson.M{"phone": phone}).Decode(&user); err != nil {
		respondMessage(w, http.StatusNotFound, "User not found.")
		return
	}

	var inCart *models.CartItem
	for i := range user.Cart {
		if user.Cart[i].Name == req.ProductName {
			inCart = &user.Cart[i]
			break
		}
	}
	if inCart == nil || inCart.Verification == nil {
		respondMessage(w, http.StatusBadRequest, "No verification code was requested for this item.")
		return
	}
	if inCart.Verification.Code != req.VerificationCode {
		respondMessage(w, http.StatusBadRequest, "The verification code is incorrect.")
		return
	}

	_, err := cc.Users.UpdateOne(ctx,
		bson.M{"phone": phone, "cart.name": req.ProductName},
		bson.M{
			"$set":   bson.M{"cart.$.discount": studentDiscountPercent},
			"$unset": bson.M{"cart.$.verification": ""},
		})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error during verification.")
		return
	}

	respondSuccess(w, "Discount applied successfully!")
}

// UpdateCartOffer records a bank offer selection on one cart item.
func (cc *CartController) UpdateCartOffer(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		ProductName   string `json:"productName"`
		OfferID       string `json:"offerId"`
		AccountNumber string `json:"accountNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductName == "" || req.OfferID == "" {
		respondMessage(w, http.StatusBadRequest, "Missing required information.")
		return
	}

	accountNumber := req.AccountNumber
	if req.OfferID == "none" {
		accountNumber = ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.Users.UpdateOne(ctx,
		bson.M{"phone": phone, "cart.name": req.ProductName},
		bson.M{"$set": bson.M{
			"cart.$.selectedOfferId": req.OfferID,
			"cart.$.accountNumber":   accountNumber,
		}})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error updating offer.")
		return
	}
	if result.MatchedCount == 0 {
		respondMessage(w, http.StatusNotFound, "Product not found in cart.")
		return
	}

	cc.Recommender.Enqueue(phone)
	respondSuccess(w, "Offer updated successfully.")
}
