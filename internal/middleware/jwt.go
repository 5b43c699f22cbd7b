package middleware

import (
	"strings" // String manipulation

	"hostel_booking/internal/apperrors" // Application error type
	"hostel_booking/internal/domain"    // Domain models
	"hostel_booking/internal/service"   // Session resolution

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID = "userID" // uint
	ContextUser   = "user"   // *domain.User
	ContextToken  = "token"  // raw bearer token
)

// BearerToken extracts the token from the Authorization header
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization") // Get Authorization header
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
	return token, token != ""
}

// JWTAuthMiddleware resolves the bearer token to a live session and loads its user
func JWTAuthMiddleware(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		// Check if the Authorization header is present and properly formatted
		if !ok {
			Abort(c, apperrors.Unauthorized("Missing or invalid Authorization header"))
			return
		}
		user, err := auth.CurrentUser(c.Request.Context(), token) // Verify token, session and account
		if err != nil {
			Abort(c, err)
			return
		}
		c.Set(ContextUserID, user.ID) // Store userID in context
		c.Set(ContextUser, user)      // Store the loaded user for handlers
		c.Set(ContextToken, token)    // Needed by logout
		c.Next()                      // Proceed to the next handler
	}
}

// CurrentUser returns the user stored by JWTAuthMiddleware, or nil
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
