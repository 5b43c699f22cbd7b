package service

import (
	"context"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/repository"
)

// AvailabilityService answers which room types are free for a stay.
type AvailabilityService struct {
	rooms repository.RoomTypeRepository
}

func NewAvailabilityService(rooms repository.RoomTypeRepository) *AvailabilityService {
	return &AvailabilityService{rooms: rooms}
}

// Search parses the YYYY-MM-DD window and returns every room type without a
// conflicting booking. No match yields an empty slice.
func (s *AvailabilityService) Search(ctx context.Context, checkIn, checkOut string) ([]domain.RoomType, error) {
	stay, err := domain.ParseStay(checkIn, checkOut)
	if err != nil {
		return nil, stayError(err)
	}
	rooms, err := s.rooms.ListAvailable(ctx, stay)
	if err != nil {
		return nil, apperrors.Internal("Failed to search availability", err)
	}
	if rooms == nil {
		rooms = []domain.RoomType{}
	}
	return rooms, nil
}
