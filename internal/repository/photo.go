package repository

import (
	"context"

	"hostel_booking/internal/domain"

	"gorm.io/gorm"
)

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) List(ctx context.Context) ([]domain.Photo, error) {
	var photos []domain.Photo
	if err := r.db.WithContext(ctx).Order("id").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}
