package routes

import (
	"net/http"
	"time"

	"horizon/handlers"
	"horizon/middleware"
	"horizon/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the booking commit endpoints. Every route
// requires a verified Firebase ID token.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.FirebaseAuthMiddleware(hb.AuthClient))
		api.POST("", hb.Booking.CreateBooking)
		api.GET("", hb.Booking.ListMyTrips)
		api.GET("/stream", hb.Booking.StreamBookings)
		api.GET("/:id", hb.Booking.GetBooking)
		api.PATCH("/:id/status", hb.Booking.UpdateStatus)
		api.POST("/:id/voucher", hb.Booking.GenerateVoucher)
	}
}

// RegisterPaymentRoutes sets up the payment gateway endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.FirebaseAuthMiddleware(hb.AuthClient))
		api.POST("/order", hb.Payment.CreateOrder)
		api.POST("/verify", hb.Payment.VerifyPayment)
	}
}

// RegisterUserRoutes sets up the profile mirror endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.FirebaseAuthMiddleware(hb.AuthClient))
		api.POST("/sync", hb.User.SyncProfile)
		api.GET("/me", hb.User.GetProfile)
		api.PUT("/fcm-token", hb.User.UpdateFCMToken)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/analytics", hb.Analytics.GetTotals)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
