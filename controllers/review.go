package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"nexusmarket/mailer"
	"nexusmarket/middleware"
	"nexusmarket/models"
	"nexusmarket/store"
)

// ReviewController handles product reviews and support requests.
type ReviewController struct {
	Store  *store.Mongo
	Sender mailer.Sender
	Logger *zap.Logger
}

// NewReviewController creates a new ReviewController.
func NewReviewController(st *store.Mongo, sender mailer.Sender, logger *zap.Logger) *ReviewController {
	return &ReviewController{Store: st, Sender: sender, Logger: logger}
}

// SubmitReview attaches a review to a delivered item and marks it reviewed.
func (rc *ReviewController) SubmitReview(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		ItemID      string  `json:"itemId"`
		ProductName string  `json:"productName"`
		Category    string  `json:"category"`
		Rating      float64 `json:"rating"`
		ReviewText  string  `json:"reviewText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" || req.Rating == 0 || req.ReviewText == "" {
		respondMessage(w, http.StatusBadRequest, "Missing required review data.")
		return
	}

	itemID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid item ID.")
		return
	}
	if req.Category == "" {
		req.Category = "General"
	}

	review := models.Review{
		ID:          primitive.NewObjectID(),
		ItemID:      itemID,
		ProductName: req.ProductName,
		Category:    req.Category,
		Rating:      int(req.Rating),
		ReviewText:  req.ReviewText,
		Date:        time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := rc.Store.Collection().UpdateOne(ctx,
		bson.M{"phone": phone, "deliveredItems._id": itemID},
		bson.M{"$set": bson.M{
			"deliveredItems.$.reviewed": true,
			"deliveredItems.$.myReview": review,
		}})
	if err != nil {
		rc.Logger.Error("saving review failed", zap.String("phone", phone), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Server error submitting review.")
		return
	}
	if res.MatchedCount == 0 {
		respondMessage(w, http.StatusNotFound, "Item not found in your delivered history.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Review submitted successfully!"})
}

// GetProductReviews collects every review of a product across all users.
// The endpoint is public so product pages can show reviews without a session.
func (rc *ReviewController) GetProductReviews(w http.ResponseWriter, r *http.Request) {
	productName := r.URL.Query().Get("productName")
	if productName == "" {
		respondMessage(w, http.StatusBadRequest, "Product name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := rc.Store.Collection().Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{"deliveredItems.name": productName}},
		bson.M{"$unwind": "$deliveredItems"},
		bson.M{"$match": bson.M{
			"deliveredItems.name":     productName,
			"deliveredItems.reviewed": true,
		}},
		bson.M{"$project": bson.M{
			"_id":        0,
			"userName":   "$name",
			"rating":     "$deliveredItems.myReview.rating",
			"reviewText": "$deliveredItems.myReview.reviewText",
			"date":       "$deliveredItems.myReview.date",
		}},
	})
	if err != nil {
		rc.Logger.Error("fetching reviews failed", zap.String("product", productName), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Server error fetching reviews.")
		return
	}
	defer cursor.Close(ctx)

	type productReview struct {
		UserName   string    `bson:"userName" json:"userName"`
		Rating     float64   `bson:"rating" json:"rating"`
		ReviewText string    `bson:"reviewText" json:"reviewText"`
		Date       time.Time `bson:"date" json:"date"`
	}
	var reviews []productReview
	if err := cursor.All(ctx, &reviews); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Server error fetching reviews.")
		return
	}

	// Newest first.
	for i, j := 0, len(reviews)-1; i < j; i, j = i+1, j-1 {
		reviews[i], reviews[j] = reviews[j], reviews[i]
	}

	var average float64
	if len(reviews) > 0 {
		var total float64
		for _, rv := range reviews {
			total += rv.Rating
		}
		average = total / float64(len(reviews))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reviews":      reviews,
		"average":      average,
		"totalReviews": len(reviews),
	})
}

// ContactSupport forwards a support request to the support inbox.
func (rc *ReviewController) ContactSupport(w http.ResponseWriter, r *http.Request) {
	phone := middleware.Phone(r)

	var req struct {
		Category string `json:"category"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Category == "" || req.Message == "" {
		respondMessage(w, http.StatusBadRequest, "Category and message are required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := rc.Store.FindByPhone(ctx, phone)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "User not found.")
		return
	}

	inbox := os.Getenv("SUPPORT_EMAIL")
	if inbox == "" {
		inbox = os.Getenv("EMAIL_SENDER")
	}

	subject, html := mailer.SupportTicket(*user, req.Category, req.Message)
	if err := rc.Sender.Send(ctx, inbox, subject, html); err != nil {
		rc.Logger.Error("sending support ticket failed", zap.String("phone", phone), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Server error sending your message.")
		return
	}

	respondSuccess(w, "Your message has been sent to our support team.")
}
