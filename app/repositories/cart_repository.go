package repositories

import (
	"context"
	"errors"

	"github.com/shopstreet/shopstreet/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	GetOrCreate(ctx context.Context, identity models.Identity) (*models.Cart, error)
	GetWithItems(ctx context.Context, cartID string) (*models.Cart, error)
	Find(ctx context.Context, identity models.Identity) (*models.Cart, error)
	// GetItemsForUpdate reads the cart's lines under a row lock inside tx so
	// a concurrent add/remove cannot skew a checkout snapshot.
	GetItemsForUpdate(ctx context.Context, tx *gorm.DB, cartID string) ([]models.CartItem, error)
}

type gormCartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &gormCartRepository{db: db}
}

func (r *gormCartRepository) GetOrCreate(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	var cart models.Cart
	cond := models.Cart{UserID: identity.UserID, SessionKey: identity.SessionKey}
	err := r.db.WithContext(ctx).Where(&cond).FirstOrCreate(&cart, cond).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) GetWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.created_at") }).
		Preload("Items.Product").
		Preload("Items.Variant").
		First(&cart, "id = ?", cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) Find(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	var cart models.Cart
	cond := models.Cart{UserID: identity.UserID, SessionKey: identity.SessionKey}
	err := r.db.WithContext(ctx).Where(&cond).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) GetItemsForUpdate(ctx context.Context, tx *gorm.DB, cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Product").
		Preload("Variant").
		Where("cart_id = ?", cartID).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
