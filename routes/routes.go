// routes/routes.go
package routes

import (
	"nexusmarket/controllers"
	"nexusmarket/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
	reviewController *controllers.ReviewController) {

	// Public routes
	router.HandleFunc("/signup/send-otp", authController.SendSignupOTP).Methods("POST")
	router.HandleFunc("/signup", authController.Signup).Methods("POST")
	router.HandleFunc("/signin", authController.Signin).Methods("POST")
	router.HandleFunc("/request-password-reset", authController.RequestPasswordReset).Methods("POST")
	router.HandleFunc("/verify-otp", authController.VerifyResetOTP).Methods("POST")
	router.HandleFunc("/verify-otp-and-reset", authController.ResetPassword).Methods("POST")
	router.HandleFunc("/api/product/reviews", reviewController.GetProductReviews).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/api/user").Subrouter()
	protected.Use(middleware.RequireAuth)

	protected.HandleFunc("/data", userController.GetUserData).Methods("GET")
	protected.HandleFunc("/profile-image", userController.UpdateProfileImage).Methods("PUT")
	protected.HandleFunc("/profile-image", userController.DeleteProfileImage).Methods("DELETE")
	protected.HandleFunc("/address", userController.UpdateAddress).Methods("PUT")
	protected.HandleFunc("/viewed", userController.AddViewedItem).Methods("POST")
	protected.HandleFunc("/recommendations", userController.ClearRecommendations).Methods("DELETE")

	// Cart and wishlist routes
	protected.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart/quantity", cartController.UpdateCartQuantity).Methods("PUT")
	protected.HandleFunc("/cart/remove", cartController.RemoveFromCart).Methods("DELETE")
	protected.HandleFunc("/cart/offer", cartController.UpdateCartOffer).Methods("PUT")
	protected.HandleFunc("/wishlist", cartController.ToggleWishlist).Methods("POST")
	protected.HandleFunc("/request-discount-code", cartController.RequestDiscountCode).Methods("POST")
	protected.HandleFunc("/verify-discount-code", cartController.VerifyDiscountCode).Methods("POST")

	// Order routes
	protected.HandleFunc("/orders", orderController.PlaceOrder).Methods("POST")
	protected.HandleFunc("/orders/cancel", orderController.CancelOrder).Methods("PUT")
	protected.HandleFunc("/order/{orderId}", orderController.GetOrder).Methods("GET")
	protected.HandleFunc("/returns/request-otp", orderController.RequestReturnOTP).Methods("POST")
	protected.HandleFunc("/returns/finalize", orderController.FinalizeReturn).Methods("POST")

	// Review and support routes
	protected.HandleFunc("/review", reviewController.SubmitReview).Methods("POST")
	protected.HandleFunc("/contact-support", reviewController.ContactSupport).Methods("POST")
}
