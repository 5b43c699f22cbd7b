package domain

import "time"

// Rating bounds accepted for reviews
const (
	MinRating = 1
	MaxRating = 5
)

// Review Model
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                              // Primary key
	UserID    uint      `gorm:"not null;index" json:"user_id" validate:"required"` // Foreign key to User
	Rating    int       `gorm:"not null" json:"rating" validate:"min=1,max=5"`     // 1..5
	Comment   *string   `gorm:"type:text" json:"comment,omitempty"`                // Optional free text
	CreatedAt time.Time `json:"created_at"`                                        // Submission time

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
