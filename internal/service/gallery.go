package service

import (
	"context"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/repository"
	"hostel_booking/internal/utils"
)

type GalleryService struct {
	photos repository.PhotoRepository
	cache  *utils.Cache
}

func NewGalleryService(photos repository.PhotoRepository, cache *utils.Cache) *GalleryService {
	return &GalleryService{photos: photos, cache: cache}
}

// List returns photo metadata and whether it was served from the cache.
func (s *GalleryService) List(ctx context.Context) ([]domain.Photo, bool, error) {
	var photos []domain.Photo
	cached, err := s.cache.Remember(ctx, utils.KeyPhotos, &photos, func() (any, error) {
		return s.photos.List(ctx)
	})
	if err != nil {
		return nil, false, apperrors.Internal("Failed to load gallery", err)
	}
	if photos == nil {
		photos = []domain.Photo{}
	}
	return photos, cached, nil
}
