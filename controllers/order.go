package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"nexusmarket/engine"
	"nexusmarket/mailer"
	"nexusmarket/middleware"
	"nexusmarket/models"
	"nexusmarket/store"
)

// returnWindow is how long after delivery an item remains returnable.
const returnWindow = 3 * 24 * time.Hour

// OrderController handles order placement, cancellation and returns.
type OrderController struct {
	Store  *store.Mongo
	Engine *engine.Engine
	Sender mailer.Sender
	Logger *zap.Logger
}

// NewOrderController creates a new OrderController.
func NewOrderController(st *store.Mongo, eng *engine.Engine, sender mailer.Sender, logger *zap.Logger) *OrderController {
	return &OrderController{Store: st, Engine: eng, Sender: sender, Logger: logger}
}

// PlaceOrder accepts a checkout payload, stamps the shipping schedule onto it
// and prepends it to the user's orders. The scheduled timestamps are computed
// exactly once here; the background worker only ever compares against them.
func (oc *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		Order *models.Order `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Order == nil {
		respondMessage(w, http.StatusBadRequest, "Missing data")
		return
	}
	order := req.Order

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := oc.Store.FindByPhone(ctx, phone)
	if err != nil || user.Email == "" {
		respondMessage(w, http.StatusNotFound, "User not found.")
		return
	}

	if order.OrderID == "" {
		order.OrderID = uuid.NewString()
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}

	schedule := oc.Engine.ScheduleFor(order.OrderDate)
	schedule.Apply(order)
	order.ConfirmationEmail = user.Email

	_, err = oc.Store.Collection().UpdateOne(ctx, bson.M{"phone": phone}, bson.M{
		"$push": bson.M{"orders": bson.M{"$each": []models.Order{*order}, "$position": 0}},
		"$set":  bson.M{"cart": []models.CartItem{}},
	})
	if err != nil {
		oc.Logger.Error("creating order failed", zap.String("phone", phone), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Server error creating order")
		return
	}

	go func(email string, order models.Order) {
		subject, html := mailer.OrderConfirmation(order)
		if err := oc.Sender.Send(context.Background(), email, subject, html); err != nil {
			oc.Logger.Warn("sending order confirmation failed",
				zap.String("email", email), zap.String("order", order.OrderID), zap.Error(err))
		}
	}(user.Email, *order)

	respondSuccess(w, "Order placed successfully")
}

// CancelOrder removes an order from the user's active orders. Cancellation is
// allowed from any non-terminal state; a delivered order can no longer be
// cancelled. No history entry is written and no points are awarded.
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := oc.Store.FindByPhone(ctx, phone)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "Order not found.")
		return
	}

	var toCancel *models.Order
	for i := range user.Orders {
		if user.Orders[i].OrderID == req.OrderID {
			toCancel = &user.Orders[i]
			break
		}
	}
	if toCancel == nil {
		respondMessage(w, http.StatusNotFound, "Order not found.")
		return
	}
	if !toCancel.Status.CanTransitionTo(models.StatusCancelled) {
		respondMessage(w, http.StatusBadRequest, "This order can no longer be cancelled.")
		return
	}

	if toCancel.ConfirmationEmail != "" {
		go func(name string, order models.Order) {
			subject, html := mailer.Cancellation(name, order)
			if err := oc.Sender.Send(context.Background(), order.ConfirmationEmail, subject, html); err != nil {
				oc.Logger.Warn("sending cancellation email failed",
					zap.String("order", order.OrderID), zap.Error(err))
			}
		}(user.Name, *toCancel)
	}

	_, err = oc.Store.Collection().UpdateOne(ctx, bson.M{"phone": phone},
		bson.M{"$pull": bson.M{"orders": bson.M{"orderId": req.OrderID}}})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error cancelling order")
		return
	}

	respondSuccess(w, "Order cancelled successfully")
}

// GetOrder returns one order plus the owner's contact details.
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)
	orderID := mux.Vars(r)["orderId"]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := oc.Store.FindByPhone(ctx, phone)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "Order not found.")
		return
	}

	for _, order := range user.Orders {
		if order.OrderID == orderID {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"userName":  user.Name,
				"userEmail": user.Email,
				"userPhone": user.Phone,
				"order":     order,
			})
			return
		}
	}
	respondMessage(w, http.StatusNotFound, "Order not found.")
}

// RequestReturnOTP starts a return for a delivered item: the window is checked
// and a verification code is emailed and stored, hashed, on the item.
func (oc *OrderController) RequestReturnOTP(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		ItemID string `json:"itemId"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" || req.Reason == "" {
		respondMessage(w, http.StatusBadRequest, "Missing required information.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := oc.Store.FindByPhone(ctx, phone)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "User not found.")
		return
	}

	itemID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid item ID.")
		return
	}

	var item *models.DeliveredItem
	for i := range user.DeliveredItems {
		if user.DeliveredItems[i].ID == itemID {
			item = &user.DeliveredItems[i]
			break
		}
	}
	if item == nil {
		respondMessage(w, http.StatusNotFound, "Item not found in your delivered history.")
		return
	}
	if time.Since(item.DeliveryDate) > returnWindow {
		respondMessage(w, http.StatusBadRequest, "The return window for this item has expired.")
		return
	}

	otp := randomCode()
	hashedOTP, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error sending OTP.")
		return
	}

	_, err = oc.Store.Collection().UpdateOne(ctx,
		bson.M{"phone": phone, "deliveredItems._id": itemID},
		bson.M{"$set": bson.M{"deliveredItems.$.returnOTP": models.ReturnOTP{
			Hash:   string(hashedOTP),
			Reason: req.Reason,
		}}})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error sending OTP.")
		return
	}

	subject, html := mailer.ReturnOTP(item.Name, otp)
	if err := oc.Sender.Send(ctx, user.Email, subject, html); err != nil {
		oc.Logger.Error("sending return OTP failed", zap.String("email", user.Email), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Server error sending OTP.")
		return
	}

	respondMessage(w, http.StatusOK, "OTP sent to your email.")
}

// FinalizeReturn redeems the return code and removes the item from the
// delivered history; the next user-data read reconciles reward points down.
func (oc *OrderController) FinalizeReturn(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		ItemID string `json:"itemId"`
		OTP    string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" || req.OTP == "" {
		respondMessage(w, http.StatusBadRequest, "Missing required information.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := oc.Store.FindByPhone(ctx, phone)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "User not found.")
		return
	}

	itemID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid item ID.")
		return
	}

	var item *models.DeliveredItem
	for i := range user.DeliveredItems {
		if user.DeliveredItems[i].ID == itemID {
			item = &user.DeliveredItems[i]
			break
		}
	}
	if item == nil || item.ReturnOTP == nil {
		respondMessage(w, http.StatusBadRequest, "Return process was not initiated for this item.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(item.ReturnOTP.Hash), []byte(req.OTP)) != nil {
		respondMessage(w, http.StatusBadRequest, "The verification code is incorrect.")
		return
	}

	_, err = oc.Store.Collection().UpdateOne(ctx, bson.M{"phone": phone},
		bson.M{"$pull": bson.M{"deliveredItems": bson.M{"_id": itemID}}})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error finalizing return.")
		return
	}

	go func(name, email, itemName, reason string) {
		subject, html := mailer.ReturnConfirmed(name, itemName, reason)
		if err := oc.Sender.Send(context.Background(), email, subject, html); err != nil {
			oc.Logger.Warn("sending return confirmation failed", zap.String("email", email), zap.Error(err))
		}
	}(user.Name, user.Email, item.Name, item.ReturnOTP.Reason)

	respondSuccess(w, "Return processed successfully.")
}
