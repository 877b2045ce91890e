package repositories

import (
	"context"

	"github.com/shopstreet/shopstreet/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error
	DeleteByOrder(ctx context.Context, tx *gorm.DB, orderID string) error
}

type gormOrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &gormOrderItemRepository{db: db}
}

func (r *gormOrderItemRepository) BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *gormOrderItemRepository) DeleteByOrder(ctx context.Context, tx *gorm.DB, orderID string) error {
	return tx.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error
}
