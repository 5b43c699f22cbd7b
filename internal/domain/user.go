package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                                                   // Primary key
	Username  string    `gorm:"size:80;uniqueIndex;not null" json:"username" validate:"required,alphanum,min=3,max=80"` // Unique username
	Email     string    `gorm:"size:120;uniqueIndex;not null" json:"email" validate:"required,email,max=120"`           // Unique email
	Password  string    `gorm:"size:120;not null" json:"-"`                                                             // Hashed password, never serialized
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`                                                 // Administrator flag
	CreatedAt time.Time `json:"created_at"`                                                                             // Registration time
}
