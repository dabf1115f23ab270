package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"nexusmarket/engine"
	"nexusmarket/mailer"
	"nexusmarket/middleware"
	"nexusmarket/models"
	"nexusmarket/store"
)

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// UserController handles profile and user-data requests.
type UserController struct {
	Store  *store.Mongo
	Engine *engine.Engine
	Sender mailer.Sender
	Logger *zap.Logger
}

// NewUserController creates a new UserController.
func NewUserController(st *store.Mongo, eng *engine.Engine, sender mailer.Sender, logger *zap.Logger) *UserController {
	return &UserController{Store: st, Engine: eng, Sender: sender, Logger: logger}
}

// GetUserData returns the full user document. Reading is also the catch-up
// path: any order transitions that became eligible since the last scheduler
// pass are applied inline, and the stored reward-point total is reconciled
// against the delivered history, which always wins over the cached value.
func (uc *UserController) GetUserData(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := uc.Store.FindByPhone(ctx, phone)
	if err == store.ErrNotFound {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		uc.Logger.Error("loading user failed", zap.String("phone", phone), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Server error retrieving user data")
		return
	}

	changed, notifications := uc.Engine.Advance(user, time.Now())
	correctPoints := engine.PointsFromHistory(user.DeliveredItems)

	if changed || user.RewardPoints != correctPoints {
		user.RewardPoints = correctPoints
		if err := uc.Store.UpdateOrderState(ctx, phone, user.Orders, user.DeliveredItems, user.RewardPoints); err != nil {
			uc.Logger.Error("persisting reconciled state failed", zap.String("phone", phone), zap.Error(err))
			respondMessage(w, http.StatusInternalServerError, "Server error retrieving user data")
			return
		}
		uc.Logger.Info("points synced", zap.String("phone", phone), zap.Int("points", correctPoints))
	}

	// Catch-up transitions owe the same notifications the scheduler would have
	// sent; delivery stays best-effort and off the request path.
	for _, n := range notifications {
		if n.To == "" {
			continue
		}
		go func(n engine.Notification) {
			subject, html := mailer.Render(n)
			if err := uc.Sender.Send(context.Background(), n.To, subject, html); err != nil {
				uc.Logger.Error("sending catch-up notification failed",
					zap.String("to", n.To), zap.String("order", n.Order.OrderID), zap.Error(err))
			}
		}(n)
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateProfileImage stores the user's profile image.
func (uc *UserController) UpdateProfileImage(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		respondMessage(w, http.StatusBadRequest, "No image data provided.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := uc.Store.Collection().UpdateOne(ctx, bson.M{"phone": phone}, bson.M{"$set": bson.M{"profileImage": req.Image}})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error updating profile image")
		return
	}
	respondSuccess(w, "Profile image updated successfully")
}

// DeleteProfileImage removes the user's profile image.
func (uc *UserController) DeleteProfileImage(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := uc.Store.Collection().UpdateOne(ctx, bson.M{"phone": phone}, bson.M{"$unset": bson.M{"profileImage": ""}})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error removing image")
		return
	}
	respondSuccess(w, "Profile image removed")
}

// UpdateAddress replaces the user's saved delivery address.
func (uc *UserController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		Address models.Address `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Address.Mobile != "" && !mobilePattern.MatchString(req.Address.Mobile) {
		respondMessage(w, http.StatusBadRequest, "Mobile number must be exactly 10 digits.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := uc.Store.Collection().UpdateOne(ctx, bson.M{"phone": phone}, bson.M{"$set": bson.M{"address": req.Address}})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error updating address")
		return
	}
	respondSuccess(w, "Address updated")
}

// AddViewedItem records a product view: deduplicated, newest first, capped at
// one hundred entries.
func (uc *UserController) AddViewedItem(w http.ResponseWriter, r *http.Request) {
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

	users := uc.Store.Collection()
	if _, err := users.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{"$pull": bson.M{"viewedItems": bson.M{"name": req.Product.Name}}}); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error updating viewed items.")
		return
	}
	_, err := users.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{
		"$push": bson.M{"viewedItems": bson.M{
			"$each":     []models.Product{req.Product},
			"$position": 0,
			"$slice":    100,
		}},
	})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error updating viewed items.")
		return
	}
	respondSuccess(w, "Viewed item updated.")
}

// ClearRecommendations wipes the recommendation list and viewed history.
func (uc *UserController) ClearRecommendations(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := uc.Store.Collection().UpdateOne(ctx, bson.M{"phone": phone}, bson.M{
		"$set": bson.M{"recommendations": []models.Product{}, "viewedItems": []models.Product{}},
	})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error clearing recommendations")
		return
	}
	respondSuccess(w, "Recommendations and viewed items cleared")
}
