package service

import (
	"context"
	"errors"
	"fmt"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/repository"
	"hostel_booking/internal/utils"

	"github.com/sirupsen/logrus"
)

// Locker serializes work on a key across processes.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type BookingInput struct {
	RoomTypeID uint
	CheckIn    string
	CheckOut   string
}

type BookingService struct {
	bookings repository.BookingRepository
	rooms    repository.RoomTypeRepository
	locker   Locker
	cache    *utils.Cache
	notifier *Notifier
}

func NewBookingService(bookings repository.BookingRepository, rooms repository.RoomTypeRepository, locker Locker, cache *utils.Cache, notifier *Notifier) *BookingService {
	return &BookingService{bookings: bookings, rooms: rooms, locker: locker, cache: cache, notifier: notifier}
}

func lockKey(roomTypeID uint) string {
	return fmt.Sprintf("lock:booking:room_type:%d", roomTypeID)
}

// RoomTypes lists every room type, served from the cache when warm.
func (s *BookingService) RoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	var rooms []domain.RoomType
	_, err := s.cache.Remember(ctx, utils.KeyRoomTypes, &rooms, func() (any, error) {
		return s.rooms.List(ctx)
	})
	if err != nil {
		return nil, apperrors.Internal("Failed to load room types", err)
	}
	if rooms == nil {
		rooms = []domain.RoomType{}
	}
	return rooms, nil
}

// Create books a room type for user. The window must be non-empty and must
// not overlap any existing booking of the same room type.
func (s *BookingService) Create(ctx context.Context, user *domain.User, in BookingInput) (*domain.Booking, error) {
	stay, err := domain.ParseStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, stayError(err)
	}
	if in.RoomTypeID == 0 {
		return nil, apperrors.Validation("room_type_id is required")
	}
	room, err := s.rooms.FindByID(ctx, in.RoomTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Room type")
	} else if err != nil {
		return nil, apperrors.Internal("Failed to load room type", err)
	}

	release, err := s.locker.Acquire(ctx, lockKey(room.ID))
	if errors.Is(err, utils.ErrLocked) {
		return nil, apperrors.Conflict("Another booking for this room type is in progress, please retry")
	} else if err != nil {
		return nil, apperrors.Internal("Failed to lock room type", err)
	}
	defer release()

	booking := &domain.Booking{
		UserID:     user.ID,
		RoomTypeID: room.ID,
		CheckIn:    domain.NewDate(stay.CheckIn),
		CheckOut:   domain.NewDate(stay.CheckOut),
		Status:     domain.BookingPending,
	}
	if err := s.bookings.CreateIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, apperrors.Conflict("Room type is not available for the selected dates")
		}
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	logrus.WithFields(logrus.Fields{
		"booking_id":   booking.ID,
		"user_id":      user.ID,
		"room_type_id": room.ID,
		"check_in":     booking.CheckIn.String(),
		"check_out":    booking.CheckOut.String(),
	}).Info("Booking created")
	s.notifier.BookingCreated(ctx, user, booking, room)
	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID uint) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}
