package repository

import (
	"context"

	"hostel_booking/internal/domain"

	"gorm.io/gorm"
)

type roomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) RoomTypeRepository {
	return &roomTypeRepository{db: db}
}

func (r *roomTypeRepository) List(ctx context.Context) ([]domain.RoomType, error) {
	var rooms []domain.RoomType
	if err := r.db.WithContext(ctx).Order("id").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomTypeRepository) FindByID(ctx context.Context, id uint) (*domain.RoomType, error) {
	var room domain.RoomType
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *roomTypeRepository) ListAvailable(ctx context.Context, stay domain.Stay) ([]domain.RoomType, error) {
	db := r.db.WithContext(ctx)
	booked := db.Model(&domain.Booking{}).Select("room_type_id").Scopes(overlapping(stay))

	var rooms []domain.RoomType
	if err := db.Where("id NOT IN (?)", booked).Order("id").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
