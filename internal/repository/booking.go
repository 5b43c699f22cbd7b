package repository

import (
	"context"
	"fmt"

	"hostel_booking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// overlapping filters bookings colliding with stay. Both bounds are
// inclusive, matching domain.Stay.Conflicts.
func overlapping(stay domain.Stay) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("check_in <= ? AND check_out >= ?", stay.CheckOut, stay.CheckIn)
	}
}

// LockRoomType takes a row lock on the room type for the rest of tx, so
// concurrent overlap checks against it run one at a time. Every path that
// inserts or moves a booking must call it before counting conflicts.
func LockRoomType(tx *gorm.DB, roomTypeID uint) error {
	var rt domain.RoomType
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&rt, roomTypeID).Error
	return translate(err)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) CreateIfAvailable(ctx context.Context, booking *domain.Booking) error {
	if booking.Status == "" {
		booking.Status = domain.BookingPending
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := LockRoomType(tx, booking.RoomTypeID); err != nil {
			return fmt.Errorf("lock room type: %w", err)
		}
		var conflicts int64
		err := tx.Model(&domain.Booking{}).
			Where("room_type_id = ?", booking.RoomTypeID).
			Scopes(overlapping(booking.Stay())).
			Count(&conflicts).Error
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if conflicts > 0 {
			return ErrOverlap
		}
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("create booking: %w", translate(err))
		}
		return nil
	})
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*domain.Booking, error) {
	var booking domain.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("check_in desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *bookingRepository) CountByRoomType(ctx context.Context, roomTypeID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("room_type_id = ?", roomTypeID).Count(&n).Error
	return n, err
}
