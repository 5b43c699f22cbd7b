package api

import (
	"context"  // Probe deadlines
	"net/http" // HTTP status codes
	"time"     // Probe timeout

	"github.com/gin-gonic/gin" // Gin web framework
)

// Probe checks one dependency
type Probe func(ctx context.Context) error

// IndexHandler is the landing document
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name": "Hostel Booking",
			"links": gin.H{
				"search":  "/search",
				"booking": "/booking",
				"gallery": "/gallery",
				"review":  "/review",
				"login":   "/login",
			},
		})
	}
}

// HealthHandler runs every probe and reports 503 when any fails
func HealthHandler(probes map[string]Probe) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{}
		for name, probe := range probes {
			if err := probe(ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{"status": state, "checks": checks})
	}
}
