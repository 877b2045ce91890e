package repositories

import (
	"context"

	"github.com/shopstreet/shopstreet/app/models"
	"gorm.io/gorm"
)

type VendorRepository interface {
	ListActive(ctx context.Context) ([]models.Vendor, error)
}

type gormVendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &gormVendorRepository{db: db}
}

func (r *gormVendorRepository) ListActive(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("business_name").
		Find(&vendors).Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}
