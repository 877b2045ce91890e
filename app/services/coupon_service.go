package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopstreet/shopstreet/app/repositories"
)

// CouponQuote is a discount preview for a subtotal. Totals on a placed
// order are not adjusted by coupons; the quote exists so the storefront can
// show what a code would be worth.
type CouponQuote struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
}

type CouponService struct {
	couponRepo repositories.CouponRepository
}

func NewCouponService(couponRepo repositories.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// Validate resolves a coupon code against a subtotal. Unknown, inactive,
// expired and under-minimum codes all come back as ErrCouponInvalid so the
// caller cannot distinguish a bad code from an exhausted one.
func (s *CouponService) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*CouponQuote, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("load coupon: %w", err)
	}
	if coupon == nil || !coupon.IsValid(subtotal, time.Now()) {
		return nil, ErrCouponInvalid
	}
	return &CouponQuote{Code: coupon.Code, Discount: coupon.Discount(subtotal)}, nil
}
