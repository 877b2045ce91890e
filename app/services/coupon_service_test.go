package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstreet/shopstreet/app/models"
)

func TestCouponValidate(t *testing.T) {
	now := time.Now()
	repo := &fakeCouponRepo{coupons: map[string]*models.Coupon{
		"WELCOME10": {
			ID:            "c1",
			Code:          "WELCOME10",
			DiscountType:  models.CouponTypePercentage,
			DiscountValue: decimal.NewFromInt(10),
			MinimumAmount: decimal.NewFromInt(50),
			ValidFrom:     now.Add(-time.Hour),
			ValidUntil:    now.Add(time.Hour),
			IsActive:      true,
		},
	}}
	svc := NewCouponService(repo)

	quote, err := svc.Validate(context.Background(), "WELCOME10", decimal.RequireFromString("80.00"))
	require.NoError(t, err)
	assert.True(t, quote.Discount.Equal(decimal.RequireFromString("8.00")), "got %s", quote.Discount)

	_, err = svc.Validate(context.Background(), "WELCOME10", decimal.NewFromInt(20))
	assert.ErrorIs(t, err, ErrCouponInvalid)

	_, err = svc.Validate(context.Background(), "NOPE", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrCouponInvalid)
}
