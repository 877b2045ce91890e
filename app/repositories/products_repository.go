package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopstreet/shopstreet/app/models"
	"gorm.io/gorm"
)

// ProductListOptions narrows the product listing; zero values mean "no
// filter".
type ProductListOptions struct {
	CategorySlug string
	Query        string
	FeaturedOnly bool
	Limit        int
	Offset       int
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, opts ProductListOptions) ([]models.Product, int64, error)
	GetVariant(ctx context.Context, id string) (*models.ProductVariant, error)
	// DecrementStock reduces stock inside tx, failing when the remaining
	// stock would go negative.
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error
	IncrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error
}

type gormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Variants").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Variants").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Reviews.User").
		First(&product, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) List(ctx context.Context, opts ProductListOptions) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("products.is_active = ?", true)

	if opts.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", opts.CategorySlug)
	}
	if opts.Query != "" {
		like := "%" + opts.Query + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}
	if opts.FeaturedOnly {
		query = query.Where("products.is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var products []models.Product
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Order("products.created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *gormProductRepository) GetVariant(ctx context.Context, id string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

func (r *gormProductRepository) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	result := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("insufficient stock for product %s", productID)
	}
	return nil
}

func (r *gormProductRepository) IncrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	return tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty)).Error
}
