package api

import (
	"net/http" // HTTP status codes

	"hostel_booking/internal/apperrors"  // Application error type
	"hostel_booking/internal/middleware" // Token extraction
	"hostel_booking/internal/service"    // Authentication service

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRequest is the registration form
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required"` // Unique handle
	Email    string `json:"email" form:"email" binding:"required"`       // Unique email
	Password string `json:"password" form:"password" binding:"required"` // Plain text, hashed by the service
}

// LoginRequest is the login form
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"` // Username must be provided
	Password string `json:"password" form:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a new user account
func RegisterHandler(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON or form body
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, bindError(err))
			return
		}
		user, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, err) // Validation or duplicate
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
	}
}

// LoginHandler authenticates a user and returns a bearer token
func LoginHandler(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON or form body
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, bindError(err))
			return
		}
		session, err := auth.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err) // Same message for unknown user and wrong password
			return
		}
		c.JSON(http.StatusOK, session) // Token, expiry and user
	}
}

// LogoutHandler revokes the caller's session
func LogoutHandler(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := middleware.BearerToken(c)
		if !ok {
			respondError(c, apperrors.Unauthorized("Missing or invalid Authorization header"))
			return
		}
		if err := auth.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
