package services

import (
	"context"
	"fmt"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/repositories"
)

type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

func (s *WishlistService) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	if userID == "" {
		return nil, ErrLoginRequired
	}
	return s.wishlistRepo.GetWithItems(ctx, userID)
}

// AddIfAbsent puts a product on the user's wishlist and reports whether it
// was newly added. A repeated add is a successful no-op, which lets the
// "add to wishlist" action stay idempotent.
func (s *WishlistService) AddIfAbsent(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, ErrLoginRequired
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return false, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	if !product.IsActive {
		return false, ErrProductInactive
	}

	wishlist, err := s.wishlistRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get or create wishlist: %w", err)
	}
	return s.wishlistRepo.AddItemIfAbsent(ctx, wishlist.ID, product.ID)
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, itemID string) error {
	if userID == "" {
		return ErrLoginRequired
	}
	item, err := s.wishlistRepo.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("load wishlist item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("wishlist item %s: %w", itemID, ErrNotFound)
	}

	wishlist, err := s.wishlistRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("get wishlist: %w", err)
	}
	if item.WishlistID != wishlist.ID {
		return ErrOwnership
	}
	return s.wishlistRepo.DeleteItem(ctx, item.ID)
}
