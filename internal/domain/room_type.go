package domain

// RoomType Model
type RoomType struct {
	ID    uint    `gorm:"primaryKey" json:"id"`                                    // Primary key
	Name  string  `gorm:"size:50;not null" json:"name" validate:"required,max=50"` // Display name, e.g. "6-bed dorm"
	Price float64 `gorm:"not null" json:"price" validate:"gt=0"`                   // Nightly price
}
