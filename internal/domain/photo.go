package domain

// Photo Model, metadata only; the binary lives wherever Filename points.
type Photo struct {
	ID          uint   `gorm:"primaryKey" json:"id"`                                          // Primary key
	Filename    string `gorm:"size:100;not null" json:"filename" validate:"required,max=100"` // Stored file name
	Description string `gorm:"size:200" json:"description" validate:"max=200"`                // Caption
}
