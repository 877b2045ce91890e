package services

import (
	"context"
	"fmt"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/repositories"
)

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,max=200"`
	Comment string `json:"comment" validate:"required"`
}

type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Create adds one review per user per product.
func (s *ReviewService) Create(ctx context.Context, userID, productID string, input ReviewInput) (*models.Review, error) {
	if userID == "" {
		return nil, ErrLoginRequired
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	existing, err := s.reviewRepo.FindByProductAndUser(ctx, product.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		ProductID: product.ID,
		UserID:    userID,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID string) ([]models.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}
