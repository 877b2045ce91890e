package repositories

import (
	"context"
	"errors"

	"github.com/shopstreet/shopstreet/app/models"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	GetOrCreateByUser(ctx context.Context, userID string) (*models.Wishlist, error)
	GetWithItems(ctx context.Context, userID string) (*models.Wishlist, error)
	// AddItemIfAbsent reports whether the product was newly added; adding a
	// product already on the wishlist is a no-op, not an error.
	AddItemIfAbsent(ctx context.Context, wishlistID, productID string) (bool, error)
	GetItem(ctx context.Context, itemID string) (*models.WishlistItem, error)
	DeleteItem(ctx context.Context, itemID string) error
}

type gormWishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &gormWishlistRepository{db: db}
}

func (r *gormWishlistRepository) GetOrCreateByUser(ctx context.Context, userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.WithContext(ctx).
		Where(models.Wishlist{UserID: userID}).
		FirstOrCreate(&wishlist, models.Wishlist{UserID: userID}).Error
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *gormWishlistRepository) GetWithItems(ctx context.Context, userID string) (*models.Wishlist, error) {
	wishlist, err := r.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images").
		Where("wishlist_id = ?", wishlist.ID).
		Order("created_at DESC").
		Find(&wishlist.Items).Error
	if err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (r *gormWishlistRepository) AddItemIfAbsent(ctx context.Context, wishlistID, productID string) (bool, error) {
	item := models.WishlistItem{WishlistID: wishlistID, ProductID: productID}
	result := r.db.WithContext(ctx).
		Where(models.WishlistItem{WishlistID: wishlistID, ProductID: productID}).
		FirstOrCreate(&item)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormWishlistRepository) GetItem(ctx context.Context, itemID string) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormWishlistRepository) DeleteItem(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Delete(&models.WishlistItem{}, "id = ?", itemID).Error
}
