package api

import (
	"net/http" // HTTP status codes

	"hostel_booking/internal/service" // Booking service

	"github.com/gin-gonic/gin" // Gin web framework
)

// BookingRequest represents a booking request
type BookingRequest struct {
	RoomTypeID uint   `json:"room_type_id" form:"room_type_id" binding:"required"`   // Room type to book
	CheckIn    string `json:"check_in" form:"check_in" binding:"required,isodate"`   // First night, YYYY-MM-DD
	CheckOut   string `json:"check_out" form:"check_out" binding:"required,isodate"` // Departure day, YYYY-MM-DD
}

// ListRoomTypesHandler returns the room types that can be booked and the caller's bookings
func ListRoomTypesHandler(bookings *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		rooms, err := bookings.RoomTypes(c.Request.Context()) // Cached listing
		if err != nil {
			respondError(c, err)
			return
		}
		mine, err := bookings.ListForUser(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room_types": rooms, "bookings": mine})
	}
}

// CreateBookingHandler books a room type for the caller
func CreateBookingHandler(bookings *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req BookingRequest // Bind JSON or form body
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, bindError(err))
			return
		}
		booking, err := bookings.Create(c.Request.Context(), user, service.BookingInput{
			RoomTypeID: req.RoomTypeID,
			CheckIn:    req.CheckIn,
			CheckOut:   req.CheckOut,
		})
		if err != nil {
			respondError(c, err) // Invalid window, unknown room type or overlap
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Booking created", "booking": booking})
	}
}
