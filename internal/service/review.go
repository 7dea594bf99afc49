package service

import (
	"context"
	"fmt"

	"github.com/mvalodim/pet_shop/internal/models"
	"github.com/mvalodim/pet_shop/internal/repo"
	"github.com/mvalodim/pet_shop/internal/transport"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

func (s *ReviewService) GetByProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	return s.Repo.GetProductReviews(ctx, productID)
}

// Create stores a review as unverified; verification is a back-office action.
func (s *ReviewService) Create(ctx context.Context, userID string, req transport.CreateReviewRequest) (*models.Review, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("product_id required: %w", ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be within [1,5]: %w", ErrValidation)
	}

	review := models.Review{
		ProductID:  req.ProductID,
		UserID:     userID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		IsVerified: false,
	}
	if err := s.Repo.CreateReview(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
