package api

import (
	"net/http" // HTTP status codes

	"hostel_booking/internal/service" // Gallery service

	"github.com/gin-gonic/gin" // Gin web framework
)

// GalleryHandler lists photo metadata
func GalleryHandler(gallery *service.GalleryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		photos, cached, err := gallery.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"photos": photos, "cached": cached})
	}
}
