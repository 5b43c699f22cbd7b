package domain

import "time"

// Booking statuses
const (
	BookingPending = "pending" // Created, no successful charge yet
	BookingPaid    = "paid"    // Linked to a successful charge
)

// Booking Model
type Booking struct {
	ID         uint      `gorm:"primaryKey" json:"id"`                                                                   // Primary key
	UserID     uint      `gorm:"not null;index" json:"user_id" validate:"required"`                                      // Foreign key to User
	RoomTypeID uint      `gorm:"not null;index" json:"room_type_id" validate:"required"`                                 // Foreign key to RoomType
	CheckIn    Date      `gorm:"type:date;not null;index" json:"check_in"`                                               // First night
	CheckOut   Date      `gorm:"type:date;not null;index" json:"check_out"`                                              // Departure day
	Status     string    `gorm:"size:16;not null;default:pending" json:"status" validate:"omitempty,oneof=pending paid"` // pending or paid
	CreatedAt  time.Time `json:"created_at"`                                                                             // Creation time

	User     *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // Owning user
	RoomType *RoomType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // Booked room type
}

// Stay returns the booking's date window.
func (b *Booking) Stay() Stay {
	return Stay{CheckIn: b.CheckIn.Time, CheckOut: b.CheckOut.Time}
}
