package repositories

import (
	"context"
	"errors"

	"github.com/shopstreet/shopstreet/app/models"
	"gorm.io/gorm"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type gormCouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &gormCouponRepository{db: db}
}

func (r *gormCouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).First(&coupon, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}
