package api

import (
	"net/http" // HTTP status codes

	"hostel_booking/internal/domain"  // Date layout
	"hostel_booking/internal/service" // Availability service

	"github.com/gin-gonic/gin" // Gin web framework
)

// SearchRequest is an availability query
type SearchRequest struct {
	CheckIn  string `json:"check_in" form:"check_in" binding:"required,isodate"`   // YYYY-MM-DD
	CheckOut string `json:"check_out" form:"check_out" binding:"required,isodate"` // YYYY-MM-DD
}

// SearchFormHandler describes the fields POST /search expects
func SearchFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"fields": []string{"check_in", "check_out"},
			"format": "YYYY-MM-DD",
		})
	}
}

// SearchHandler returns the room types free for the whole window
func SearchHandler(availability *service.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest // Bind JSON or form body
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, bindError(err))
			return
		}
		rooms, err := availability.Search(c.Request.Context(), req.CheckIn, req.CheckOut)
		if err != nil {
			respondError(c, err)
			return
		}
		stay, _ := domain.ParseStay(req.CheckIn, req.CheckOut) // Already validated by Search
		c.JSON(http.StatusOK, gin.H{
			"check_in":   req.CheckIn,
			"check_out":  req.CheckOut,
			"nights":     stay.Nights(),
			"room_types": rooms,
		})
	}
}
