package routes

import (
	"time"

	"chargesphere/handlers"
	"chargesphere/middleware"
	"chargesphere/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/auth")
	{
		group.POST("/register", hb.Auth.RegisterHandler)
		group.POST("/login", hb.Auth.LoginHandler)

		// Protected routes (Require Authentication)
		group.GET("/me", auth, hb.Auth.MeHandler)
		group.POST("/logout", auth, hb.Auth.LogoutHandler)
	}
}

// RegisterUserRoutes registers profile and favorites endpoints.
func RegisterUserRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/users")
	{
		group.Use(auth)
		group.GET("/profile", hb.User.GetProfileHandler)
		group.PUT("/profile", hb.User.UpdateProfileHandler)
		group.PUT("/password", hb.User.ChangePasswordHandler)
		group.GET("/favorites", hb.User.ListFavoritesHandler)
		group.POST("/favorites", hb.User.AddFavoriteHandler)
		group.DELETE("/favorites/:stationId", hb.User.RemoveFavoriteHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the caller's bookings.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/bookings")
	{
		group.Use(auth)
		group.POST("", hb.Booking.CreateBookingHandler)
		group.GET("", hb.Booking.ListBookingsHandler)
		group.GET("/stats/summary", hb.Booking.StatsHandler)
		group.GET("/:id", hb.Booking.GetBookingHandler)
		group.PUT("/:id", hb.Booking.UpdateBookingHandler)
		group.DELETE("/:id", hb.Booking.CancelBookingHandler)
	}
}

// RegisterReviewRoutes registers review endpoints; station listings are public.
func RegisterReviewRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/reviews")
	{
		group.GET("/station/:stationId", hb.Review.StationReviewsHandler)

		group.POST("", auth, hb.Review.CreateReviewHandler)
		group.GET("/user", auth, hb.Review.UserReviewsHandler)
		group.PUT("/:id", auth, hb.Review.UpdateReviewHandler)
		group.DELETE("/:id", auth, hb.Review.DeleteReviewHandler)
		group.POST("/:id/helpful", auth, hb.Review.MarkHelpfulHandler)
		group.POST("/:id/photos", auth, hb.Review.UploadPhotoHandler)
	}
}

// RegisterStationRoutes registers station lookup and geocoding endpoints.
func RegisterStationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/stations")
	{
		group.GET("/nearby", hb.Station.NearbyHandler)
		group.GET("/recommendations", auth, hb.Station.RecommendationsHandler)
		group.POST("/charging-plan", hb.Station.ChargingPlanHandler)
	}

	geo := api.Group("/geocode")
	{
		geo.GET("", hb.Geocode.GeocodeAddress)
		geo.GET("/reverse", hb.Geocode.ReverseGeocode)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	adminGroup := api.Group("/admin")
	{
		adminGroup.Use(auth, middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/bookings", hb.Admin.ListBookingsHandler)
		adminGroup.PUT("/bookings/:id/approve", hb.Admin.ApproveBookingHandler)
		adminGroup.PUT("/bookings/:id/reject", hb.Admin.RejectBookingHandler)
		adminGroup.GET("/stats", hb.Admin.StatsHandler)
		adminGroup.GET("/users", hb.Admin.GetAllUsersHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, corsOrigins []string) {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	// Credentials cannot be combined with a wildcard origin.
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = corsOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	auth := middleware.JWTAuthMiddleware(hb.UserRepo, hb.AuthCache)
	api := r.Group("/api")

	RegisterAuthRoutes(api, hb, auth)
	RegisterUserRoutes(api, hb, auth)
	RegisterBookingRoutes(api, hb, auth)
	RegisterReviewRoutes(api, hb, auth)
	RegisterStationRoutes(api, hb, auth)
	RegisterAdminRoutes(api, hb, auth)
	api.GET("/health", hb.Health.HealthCheck)
	r.GET("/health", hb.Health.HealthCheck)
}
