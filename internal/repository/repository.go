// Package repository is the booking store: one repository per entity, backed by gorm.
package repository

import (
	"context"
	"errors"

	"hostel_booking/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("duplicate record")
	ErrOverlap     = errors.New("booking overlaps an existing reservation")
	ErrAlreadyPaid = errors.New("booking already paid")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type RoomTypeRepository interface {
	List(ctx context.Context) ([]domain.RoomType, error)
	FindByID(ctx context.Context, id uint) (*domain.RoomType, error)
	// ListAvailable returns room types with no booking conflicting with stay.
	ListAvailable(ctx context.Context, stay domain.Stay) ([]domain.RoomType, error)
}

type BookingRepository interface {
	// CreateIfAvailable inserts booking unless it conflicts with another
	// booking of the same room type, in which case ErrOverlap is returned.
	CreateIfAvailable(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, id uint) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Booking, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountByRoomType(ctx context.Context, roomTypeID uint) (int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	List(ctx context.Context, limit int) ([]domain.Review, error)
}

type PhotoRepository interface {
	List(ctx context.Context) ([]domain.Photo, error)
}

type PaymentRepository interface {
	// Record stores a successful charge and, when it references a booking,
	// marks that booking paid in the same transaction.
	Record(ctx context.Context, payment *domain.Payment) error
	ListByUser(ctx context.Context, userID uint) ([]domain.Payment, error)
}

// Store groups the repositories over one database handle.
type Store struct {
	Users     UserRepository
	RoomTypes RoomTypeRepository
	Bookings  BookingRepository
	Reviews   ReviewRepository
	Photos    PhotoRepository
	Payments  PaymentRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		Users:     NewUserRepository(db),
		RoomTypes: NewRoomTypeRepository(db),
		Bookings:  NewBookingRepository(db),
		Reviews:   NewReviewRepository(db),
		Photos:    NewPhotoRepository(db),
		Payments:  NewPaymentRepository(db),
	}
}

// translate maps gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
