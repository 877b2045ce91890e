package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem references its product (and optional variant) for pricing; the
// unit price is never duplicated onto the row. VariantID is the empty string
// when no variant was chosen so the composite unique index holds on MySQL,
// which would otherwise permit duplicate NULL entries.
type CartItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID    string          `gorm:"size:36;not null;uniqueIndex:idx_cart_product_variant" json:"cart_id"`
	Cart      *Cart           `gorm:"foreignKey:CartID" json:"-"`
	ProductID string          `gorm:"size:36;not null;uniqueIndex:idx_cart_product_variant" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	VariantID string          `gorm:"size:36;not null;default:'';uniqueIndex:idx_cart_product_variant" json:"variant_id,omitempty"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}

// UnitPrice is the product price plus the variant adjustment, derived from
// the referenced rows at read time. Requires Product (and Variant, if set)
// to be loaded.
func (ci *CartItem) UnitPrice() decimal.Decimal {
	if ci.Product == nil {
		return decimal.Zero
	}
	price := ci.Product.Price
	if ci.Variant != nil {
		price = price.Add(ci.Variant.PriceAdjustment)
	}
	return price
}

func (ci *CartItem) TotalPrice() decimal.Decimal {
	return ci.UnitPrice().Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
