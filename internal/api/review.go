package api

import (
	"net/http" // HTTP status codes

	"hostel_booking/internal/service" // Review service

	"github.com/gin-gonic/gin" // Gin web framework
)

// ReviewRequest is a guest review
type ReviewRequest struct {
	Rating  int    `json:"rating" form:"rating" binding:"required"` // 1..5, range checked by the service
	Comment string `json:"comment" form:"comment"`                  // Optional
}

// ListReviewsHandler returns recent reviews, newest first
func ListReviewsHandler(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := reviews.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": list})
	}
}

// CreateReviewHandler stores a review by the caller
func CreateReviewHandler(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req ReviewRequest // Bind JSON or form body
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, bindError(err))
			return
		}
		review, err := reviews.Create(c.Request.Context(), user, req.Rating, req.Comment)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Review submitted", "review": review})
	}
}
