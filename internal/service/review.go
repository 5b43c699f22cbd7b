package service

import (
	"context"
	"fmt"
	"strings"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/repository"
)

const reviewListLimit = 50

type ReviewService struct {
	reviews repository.ReviewRepository
}

func NewReviewService(reviews repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) Create(ctx context.Context, user *domain.User, rating int, comment string) (*domain.Review, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, apperrors.Validation(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	review := &domain.Review{UserID: user.ID, Rating: rating}
	if c := strings.TrimSpace(comment); c != "" {
		review.Comment = &c
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.Internal("Failed to save review", err)
	}
	return review, nil
}

// List returns the most recent reviews first.
func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.reviews.List(ctx, reviewListLimit)
	if err != nil {
		return nil, apperrors.Internal("Failed to load reviews", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}
