package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// Coupon is modeled as data with validity logic only. How a coupon feeds
// into checkout totals is business policy that this core does not decide;
// the discount fields on Order exist for when that policy lands.
type Coupon struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Code          string          `gorm:"size:50;not null;uniqueIndex" json:"code"`
	DiscountType  string          `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"discount_value"`
	MinimumAmount decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"minimum_amount"`
	UsageLimit    int             `gorm:"default:0" json:"usage_limit"`
	UsedCount     int             `gorm:"default:0" json:"used_count"`
	ValidFrom     time.Time       `json:"valid_from"`
	ValidUntil    time.Time       `json:"valid_until"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// IsValid reports whether the coupon can be applied to an order of the
// given subtotal at the given time.
func (c *Coupon) IsValid(subtotal decimal.Decimal, now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return false
	}
	return subtotal.GreaterThanOrEqual(c.MinimumAmount)
}

// Discount computes the coupon's nominal discount for a subtotal, capped at
// the subtotal for fixed coupons.
func (c *Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	switch c.DiscountType {
	case CouponTypePercentage:
		return subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case CouponTypeFixed:
		if c.DiscountValue.GreaterThan(subtotal) {
			return subtotal
		}
		return c.DiscountValue
	}
	return decimal.Zero
}
