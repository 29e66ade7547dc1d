package routes

import (
	"net/http"

	"restaurant-booking-api/config"
	"restaurant-booking-api/handlers"
	"restaurant-booking-api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full API surface.
func SetupRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	secret := []byte(cfg.JWTSecret)

	generalLimiter := middleware.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)
	authLimiter := middleware.NewRateLimiter(cfg.RateLimitAuthWindow, cfg.RateLimitAuthMax)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "code": "ROUTE_NOT_FOUND"})
	})

	api := r.Group("/api")
	api.Use(generalLimiter.Middleware("Too many requests from this IP, please try again later."))

	// ── Auth & favorites (stricter rate limit on the whole group) ──
	auth := api.Group("/auth")
	auth.Use(authLimiter.Middleware("Too many login attempts, please try again later."))
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/profile", middleware.AuthRequired(secret), h.GetProfile)

		auth.GET("/favorites", middleware.AuthRequired(secret), h.GetFavorites)
		auth.POST("/favorites/:restaurantId", middleware.AuthRequired(secret), h.AddFavorite)
		auth.DELETE("/favorites/:restaurantId", middleware.AuthRequired(secret), h.RemoveFavorite)
	}

	// ── Restaurants ──
	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("", middleware.OptionalAuth(secret), h.ListRestaurants)
		restaurants.GET("/:id", middleware.OptionalAuth(secret), h.GetRestaurant)
		restaurants.POST("", middleware.AuthRequired(secret), middleware.OwnerOnly(), h.CreateRestaurant)
	}

	// ── Menu ──
	menu := api.Group("/menu")
	{
		menu.GET("/:restaurantId", middleware.OptionalAuth(secret), h.GetMenu)
		menu.POST("/:restaurantId", middleware.AuthRequired(secret), middleware.OwnerOnly(), h.AddMenuItem)
		menu.PUT("/:id", middleware.AuthRequired(secret), middleware.OwnerOnly(), h.UpdateMenuItem)
		menu.DELETE("/:id", middleware.AuthRequired(secret), middleware.OwnerOnly(), h.DeleteMenuItem)
	}

	// ── Bookings ──
	bookings := api.Group("/bookings")
	bookings.Use(middleware.AuthRequired(secret))
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetMyBookings)
		bookings.GET("/waiting-list",
			middleware.OwnerOnly(),
			middleware.WaitingListRestricted(cfg.RequireAdminForWaitingList),
			h.GetWaitingList)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.CancelBooking)
	}

	// ── Orders ──
	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(secret))
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.GetMyOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.PUT("/:id/status", middleware.AdminOnly(), h.UpdateOrderStatus)
		orders.DELETE("/:id", h.CancelOrder)
	}

	// ── Reviews ──
	reviews := api.Group("/reviews")
	{
		reviews.POST("", middleware.AuthRequired(secret), h.CreateReview)
		reviews.GET("/:restaurantId", middleware.OptionalAuth(secret), h.GetReviews)
		reviews.DELETE("/:id", middleware.AuthRequired(secret), h.DeleteReview)
	}
}
