package domain

import "time"

// Payment statuses
const (
	PaymentSucceeded = "succeeded"
)

// Payment Model, one row per successful provider charge
type Payment struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	UserID             uint      `gorm:"not null;index" json:"user_id"`                 // Paying user
	BookingID          *uint     `gorm:"index" json:"booking_id,omitempty"`             // Booking settled by this charge, if any
	ProviderCustomerID string    `gorm:"size:64" json:"provider_customer_id"`           // Customer id at the provider
	ProviderChargeID   string    `gorm:"size:64;uniqueIndex" json:"provider_charge_id"` // Charge id at the provider
	Amount             int64     `gorm:"not null" json:"amount"`                        // Minor units
	Currency           string    `gorm:"size:3;not null" json:"currency"`               // ISO currency code
	Status             string    `gorm:"size:16;not null" json:"status"`                // Provider charge status
	CreatedAt          time.Time `json:"created_at"`                                    // Charge time
}
