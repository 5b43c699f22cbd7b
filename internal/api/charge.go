package api

import (
	"net/http" // HTTP status codes

	"hostel_booking/internal/service" // Payment service

	"github.com/gin-gonic/gin" // Gin web framework
)

// ChargeRequest carries the provider's single-use card token
type ChargeRequest struct {
	StripeToken string `json:"stripeToken" form:"stripeToken" binding:"required"` // Single-use card token
	BookingID   *uint  `json:"booking_id" form:"booking_id"`                      // Optional booking settled by this charge
}

// ChargeHandler charges the caller the fixed booking fee
func ChargeHandler(payments *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req ChargeRequest // Bind JSON or form body
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, bindError(err))
			return
		}
		p, err := payments.Charge(c.Request.Context(), user, service.ChargeInput{Token: req.StripeToken, BookingID: req.BookingID})
		if err != nil {
			respondError(c, err) // 402 on provider refusal
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment successful", "payment": p})
	}
}

// PaymentHistoryHandler lists the caller's payments
func PaymentHistoryHandler(payments *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		list, err := payments.History(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"payments": list})
	}
}
