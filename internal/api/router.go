package api

import (
	"hostel_booking/internal/admin"      // Admin resources
	"hostel_booking/internal/middleware" // Auth, rate limiting, logging
	"hostel_booking/internal/service"    // Business services

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps is everything the HTTP layer needs
type Deps struct {
	Auth         service.AuthService
	Availability *service.AvailabilityService
	Bookings     *service.BookingService
	Payments     *service.PaymentService
	Reviews      *service.ReviewService
	Gallery      *service.GalleryService
	Admin        *admin.Registry
	AuthLimiter  *middleware.RateLimiter // Applied to /register and /login
	Probes       map[string]Probe        // Health checks
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// Public routes
	r.GET("/", IndexHandler())
	r.GET("/health", HealthHandler(d.Probes))
	r.GET("/gallery", GalleryHandler(d.Gallery))
	r.GET("/search", SearchFormHandler())
	r.POST("/search", SearchHandler(d.Availability))

	// Auth routes, rate limited per client IP
	authGroup := r.Group("")
	if d.AuthLimiter != nil {
		authGroup.Use(d.AuthLimiter.Middleware())
	}
	authGroup.POST("/register", RegisterHandler(d.Auth)) // Registration endpoint
	authGroup.POST("/login", LoginHandler(d.Auth))       // Login endpoint

	// User routes (protected by JWT)
	userGroup := r.Group("")
	userGroup.Use(middleware.JWTAuthMiddleware(d.Auth))
	userGroup.GET("/logout", LogoutHandler(d.Auth))
	userGroup.GET("/booking", ListRoomTypesHandler(d.Bookings))
	userGroup.POST("/booking", CreateBookingHandler(d.Bookings))
	userGroup.GET("/charge", PaymentHistoryHandler(d.Payments))
	userGroup.POST("/charge", ChargeHandler(d.Payments))
	userGroup.GET("/review", ListReviewsHandler(d.Reviews))
	userGroup.POST("/review", CreateReviewHandler(d.Reviews))

	// Admin routes (protected, admin only)
	adminHandler := NewAdminHandler(d.Admin)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(d.Auth), middleware.AdminOnlyMiddleware())
	adminGroup.GET("", adminHandler.Index)
	adminGroup.GET("/:resource", adminHandler.List)
	adminGroup.POST("/:resource", adminHandler.Create)
	adminGroup.GET("/:resource/:id", adminHandler.Get)
	adminGroup.PUT("/:resource/:id", adminHandler.Update)
	adminGroup.DELETE("/:resource/:id", adminHandler.Delete)

	return r
}
