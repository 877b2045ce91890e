package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shopstreet/shopstreet/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID, status string) error
	SetTracking(ctx context.Context, orderID, trackingNumber string) error
	MarkShipped(ctx context.Context, orderID string, at time.Time) error
	MarkDelivered(ctx context.Context, orderID string, at time.Time) error
	// HardDelete removes the order row entirely. It exists only for the
	// compensating rollback when payment-intent creation fails right after
	// order creation.
	HardDelete(ctx context.Context, tx *gorm.DB, orderID string) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID, status string) error {
	return tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

func (r *gormOrderRepository) SetTracking(ctx context.Context, orderID, trackingNumber string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("tracking_number", trackingNumber).Error
}

func (r *gormOrderRepository) MarkShipped(ctx context.Context, orderID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"status": models.OrderStatusShipped, "shipped_at": at}).Error
}

func (r *gormOrderRepository) MarkDelivered(ctx context.Context, orderID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"status": models.OrderStatusDelivered, "delivered_at": at}).Error
}

func (r *gormOrderRepository) HardDelete(ctx context.Context, tx *gorm.DB, orderID string) error {
	return tx.WithContext(ctx).Unscoped().Delete(&models.Order{}, "id = ?", orderID).Error
}
