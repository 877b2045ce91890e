package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shopstreet/shopstreet/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemRepository interface {
	// Upsert inserts the line or, when the (cart, product, variant) row
	// already exists, atomically increments its quantity. The uniqueness
	// constraint lives in the store, not in read-then-write application
	// code, so two concurrent adds can never produce two rows.
	Upsert(ctx context.Context, item *models.CartItem) error
	GetByID(ctx context.Context, id string) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	DeleteByCart(ctx context.Context, tx *gorm.DB, cartID string) error
}

type gormCartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepository {
	return &gormCartItemRepository{db: db}
}

func (r *gormCartItemRepository) Upsert(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}, {Name: "variant_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", item.Quantity),
				"updated_at": time.Now(),
			}),
		}).
		Create(item).Error
}

func (r *gormCartItemRepository) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Cart").
		Preload("Product").
		Preload("Variant").
		First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormCartItemRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *gormCartItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id).Error
}

func (r *gormCartItemRepository) DeleteByCart(ctx context.Context, tx *gorm.DB, cartID string) error {
	return tx.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
