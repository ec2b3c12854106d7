package routes

import (
	"time"

	userRepo "jenga/database/repository/user"
	"jenga/handlers"
	"jenga/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers and shared dependencies routes need.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Services *handlers.ServiceHandler
	Bookings *handlers.BookingHandler
	Reviews  *handlers.ReviewHandler
}

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", hb.Auth.RegisterHandler)
		auth.POST("/login", hb.Auth.LoginHandler)
	}

	authed := middleware.JWTAuthMiddleware(hb.UserRepo)

	users := r.Group("/api/users")
	users.Use(authed)
	{
		users.GET("/me", hb.Users.MeHandler)
		users.GET("", middleware.RequireRole(), hb.Users.ListUsersHandler) // admin only
		users.GET("/:id", middleware.RequireAdminOrSelf(), hb.Users.GetUserByIDHandler)
		users.PATCH("/:id", middleware.RequireAdminOrSelf(), hb.Users.UpdateUserHandler)
	}

	services := r.Group("/api/services")
	{
		services.GET("", hb.Services.ListServicesHandler)
		services.GET("/:id", hb.Services.GetServiceByIDHandler)
		// Optional auth: the owner (or an admin) may ask for inactive
		// listings, everyone else sees the active set.
		services.GET("/provider/:providerId", middleware.OptionalJWTAuth(hb.UserRepo), hb.Services.GetProviderServicesHandler)

		protected := services.Group("")
		protected.Use(authed, middleware.RequireProvider())
		protected.POST("", hb.Services.CreateServiceHandler)
		protected.PATCH("/:id", hb.Services.UpdateServiceHandler)
		protected.DELETE("/:id", hb.Services.DeleteServiceHandler)
	}

	bookings := r.Group("/api/bookings")
	bookings.Use(authed)
	{
		bookings.POST("", middleware.RequireClient(), hb.Bookings.CreateBookingHandler)
		bookings.GET("", hb.Bookings.GetBookingsHandler)
		bookings.GET("/:id", hb.Bookings.GetBookingByIDHandler)
		bookings.PATCH("/:id/status", hb.Bookings.UpdateBookingStatusHandler)
		bookings.PATCH("/:id/accept", hb.Bookings.AcceptBookingHandler)
		bookings.PATCH("/:id/decline", hb.Bookings.DeclineBookingHandler)
		bookings.PATCH("/:id/complete", hb.Bookings.CompleteBookingHandler)
		bookings.PATCH("/:id/cancel", hb.Bookings.CancelBookingHandler)
		bookings.PATCH("/:id/location", middleware.RequireProvider(), hb.Bookings.UpdateBookingLocationHandler)
	}

	reviews := r.Group("/api/reviews")
	{
		reviews.GET("/services/:serviceId", hb.Reviews.GetServiceReviewsHandler)
		reviews.POST("", authed, middleware.RequireClient(), hb.Reviews.CreateReviewHandler)
	}
}
