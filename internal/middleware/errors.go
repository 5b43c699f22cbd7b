package middleware

import (
	"hostel_booking/internal/apperrors" // Application error type

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// Abort renders err as {"error", "code"} with its HTTP status and stops the chain
func Abort(c *gin.Context, err error) {
	appErr := apperrors.As(err) // Unknown errors become INTERNAL_ERROR
	if appErr.Code == apperrors.CodeInternal {
		// Log the cause, never send it to the client
		logrus.WithError(appErr.Err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error(appErr.Message)
	}
	_ = c.Error(err) // Keep the error visible to the request logger
	c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{"error": appErr.Message, "code": appErr.Code})
}
