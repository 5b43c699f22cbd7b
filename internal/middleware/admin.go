package middleware

import (
	"hostel_booking/internal/apperrors" // Application error type

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware lets the request through only for administrators.
// It must run after JWTAuthMiddleware, which loads the user fresh from the database.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c) // Get user from context
		// Check if the request is authenticated
		if user == nil {
			Abort(c, apperrors.Unauthorized("Unauthorized"))
			return
		}
		// Check if user is an admin
		if !user.IsAdmin {
			Abort(c, apperrors.Forbidden("Admin access required"))
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
