package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartDerivedTotals(t *testing.T) {
	a := &Product{Name: "A", Price: decimal.RequireFromString("10.00")}
	b := &Product{Name: "B", Price: decimal.RequireFromString("5.00")}

	cart := &Cart{Items: []CartItem{
		{Product: a, Quantity: 2},
		{Product: b, Quantity: 1},
	}}

	assert.Equal(t, 3, cart.TotalItems())
	assert.True(t, cart.TotalPrice().Equal(decimal.RequireFromString("25.00")), "got %s", cart.TotalPrice())
	assert.False(t, cart.IsEmpty())

	cart.Items = nil
	assert.Equal(t, 0, cart.TotalItems())
	assert.True(t, cart.TotalPrice().IsZero())
	assert.True(t, cart.IsEmpty())
}

func TestCartItemVariantAdjustsUnitPrice(t *testing.T) {
	p := &Product{Price: decimal.RequireFromString("19.99")}
	v := &ProductVariant{PriceAdjustment: decimal.RequireFromString("3.00")}

	item := CartItem{Product: p, Variant: v, Quantity: 2}
	assert.True(t, item.UnitPrice().Equal(decimal.RequireFromString("22.99")))
	assert.True(t, item.TotalPrice().Equal(decimal.RequireFromString("45.98")))

	bare := CartItem{Product: p, Quantity: 1}
	assert.True(t, bare.UnitPrice().Equal(p.Price))
}

func TestCartOwnership(t *testing.T) {
	userCart := &Cart{UserID: "user-1"}
	sessionCart := &Cart{SessionKey: "sess-1"}

	assert.True(t, userCart.OwnedBy(UserIdentity("user-1")))
	assert.False(t, userCart.OwnedBy(UserIdentity("user-2")))
	assert.False(t, userCart.OwnedBy(SessionIdentity("sess-1")))

	assert.True(t, sessionCart.OwnedBy(SessionIdentity("sess-1")))
	assert.False(t, sessionCart.OwnedBy(SessionIdentity("sess-2")))
	assert.False(t, sessionCart.OwnedBy(UserIdentity("user-1")))
}

func TestIdentityValidRequiresExactlyOneOwner(t *testing.T) {
	assert.True(t, UserIdentity("user-1").Valid())
	assert.True(t, SessionIdentity("sess-1").Valid())
	assert.False(t, Identity{}.Valid())
	assert.False(t, Identity{UserID: "u", SessionKey: "s"}.Valid())
}
