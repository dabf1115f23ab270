package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"nexusmarket/mailer"
	"nexusmarket/models"
	"nexusmarket/verify"
)

// AuthController handles signup, signin and password-reset requests.
type AuthController struct {
	Users  *mongo.Collection
	Sender mailer.Sender
	OTPs   verify.Store
	Logger *zap.Logger
}

// NewAuthController creates a new AuthController.
func NewAuthController(users *mongo.Collection, sender mailer.Sender, otps verify.Store, logger *zap.Logger) *AuthController {
	return &AuthController{Users: users, Sender: sender, OTPs: otps, Logger: logger}
}

// SendSignupOTP emails a verification code to a prospective user and caches it
// until the signup call redeems it.
func (ac *AuthController) SendSignupOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Phone == "" || req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "Name, phone, and email are required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := ac.Users.FindOne(ctx, bson.M{"$or": []bson.M{{"phone": req.Phone}, {"email": req.Email}}}).Decode(&existing)
	if err == nil {
		if existing.Phone == req.Phone {
			respondMessage(w, http.StatusBadRequest, "Phone number is already registered.")
			return
		}
		respondMessage(w, http.StatusBadRequest, "Email is already registered.")
		return
	}
	if err != mongo.ErrNoDocuments {
		respondMessage(w, http.StatusInternalServerError, "Error sending verification code.")
		return
	}

	otp := randomCode()
	otpHash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Error sending verification code.")
		return
	}

	pending := verify.PendingSignup{Name: req.Name, Phone: req.Phone, OTPHash: string(otpHash)}
	if err := ac.OTPs.Put(ctx, req.Email, pending); err != nil {
		ac.Logger.Error("storing signup OTP failed", zap.String("email", req.Email), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Error sending verification code.")
		return
	}

	subject, html := mailer.VerificationCode("Account Verification", otp)
	if err := ac.Sender.Send(ctx, req.Email, subject, html); err != nil {
		ac.Logger.Error("sending signup OTP failed", zap.String("email", req.Email), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Error sending verification code.")
		return
	}

	respondMessage(w, http.StatusOK, "Verification code sent to your email.")
}

// Signup redeems the verification code and creates the user document.
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		Password string `json:"password"`
		OTP      string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Name == "" || req.Phone == "" || req.Email == "" || req.Password == "" || req.OTP == "" {
		respondMessage(w, http.StatusBadRequest, "All fields, including OTP, are required.")
		return
	}
	if len(req.Password) < 6 {
		respondMessage(w, http.StatusBadRequest, "Password must be at least 6 characters long.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pending, ok, err := ac.OTPs.Get(ctx, req.Email)
	if err != nil {
		ac.Logger.Error("loading signup OTP failed", zap.String("email", req.Email), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Error creating user.")
		return
	}
	if !ok {
		respondMessage(w, http.StatusBadRequest, "Invalid request. Please verify your email first.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(pending.OTPHash), []byte(req.OTP)) != nil {
		respondMessage(w, http.StatusBadRequest, "The verification code is incorrect.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Error creating user.")
		return
	}

	newUser := models.User{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		Password:        string(hashedPassword),
		Wishlist:        []models.Product{},
		Cart:            []models.CartItem{},
		Orders:          []models.Order{},
		ViewedItems:     []models.Product{},
		Recommendations: []models.Product{},
		DeliveredItems:  []models.DeliveredItem{},
	}
	if _, err := ac.Users.InsertOne(ctx, newUser); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Error creating user.")
		return
	}

	// Welcome mail is best-effort; account creation already succeeded.
	go func(name, email string) {
		subject, html := mailer.Welcome(name)
		if err := ac.Sender.Send(context.Background(), email, subject, html); err != nil {
			ac.Logger.Warn("sending welcome email failed", zap.String("email", email), zap.Error(err))
		}
	}(req.Name, req.Email)

	if err := ac.OTPs.Delete(ctx, req.Email); err != nil {
		ac.Logger.Warn("deleting signup OTP failed", zap.String("email", req.Email), zap.Error(err))
	}

	respondMessage(w, http.StatusCreated, "Account created successfully!")
}

// Signin authenticates by phone or email plus password. The returned token is
// the phone identifier the client echoes back in the X-Phone header.
func (ac *AuthController) Signin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Mobile/Email and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.Users.FindOne(ctx, bson.M{"$or": []bson.M{{"phone": req.Identifier}, {"email": req.Identifier}}}).Decode(&user)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "User not found.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondMessage(w, http.StatusUnauthorized, "Incorrect password.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful!",
		"token":   user.Phone,
		"name":    user.Name,
	})
}

// RequestPasswordReset emails a reset code and stores its hash on the user.
func (ac *AuthController) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "Email address is required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := ac.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		respondMessage(w, http.StatusNotFound, "This email is not registered. Please check the email or sign up.")
		return
	}

	otp := randomCode()
	hashedOTP, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Error processing your request.")
		return
	}

	if _, err := ac.Users.UpdateOne(ctx, bson.M{"email": req.Email}, bson.M{"$set": bson.M{"resetOtpHash": string(hashedOTP)}}); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Error processing your request.")
		return
	}

	subject, html := mailer.VerificationCode("Password Reset", otp)
	if err := ac.Sender.Send(ctx, req.Email, subject, html); err != nil {
		ac.Logger.Error("sending reset OTP failed", zap.String("email", req.Email), zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Error processing your request.")
		return
	}

	respondMessage(w, http.StatusOK, "A password reset code has been sent to your email.")
}

// VerifyResetOTP checks a reset code without consuming it.
func (ac *AuthController) VerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.OTP == "" {
		respondMessage(w, http.StatusBadRequest, "Email and OTP are required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil || user.ResetOTPHash == "" {
		respondMessage(w, http.StatusBadRequest, "Invalid request or no OTP was requested.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.ResetOTPHash), []byte(req.OTP)) != nil {
		respondMessage(w, http.StatusBadRequest, "The verification code is incorrect.")
		return
	}

	respondMessage(w, http.StatusOK, "OTP verified successfully.")
}

// ResetPassword redeems a reset code and replaces the password.
func (ac *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}
	if len(req.NewPassword) < 6 {
		respondMessage(w, http.StatusBadRequest, "Password must be at least 6 characters long.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil || user.ResetOTPHash == "" {
		respondMessage(w, http.StatusBadRequest, "Invalid request or no OTP was requested.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.ResetOTPHash), []byte(req.OTP)) != nil {
		respondMessage(w, http.StatusBadRequest, "The verification code is incorrect.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Error resetting password.")
		return
	}

	_, err = ac.Users.UpdateOne(ctx, bson.M{"email": req.Email}, bson.M{
		"$set":   bson.M{"password": string(hashedPassword)},
		"$unset": bson.M{"resetOtpHash": ""},
	})
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Error resetting password.")
		return
	}

	respondMessage(w, http.StatusOK, "Password has been reset successfully. Please sign in.")
}
