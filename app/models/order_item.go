package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is a denormalized copy of a cart line at order-creation time.
// Name, sku and price are frozen so catalog edits cannot retroactively
// change a placed order.
type OrderItem struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID     string          `gorm:"size:36;not null;index" json:"order_id"`
	ProductID   string          `gorm:"size:36;not null;index" json:"product_id"`
	VariantID   string          `gorm:"size:36;default:''" json:"variant_id,omitempty"`
	ProductName string          `gorm:"size:200;not null" json:"product_name"`
	ProductSku  string          `gorm:"size:100;not null" json:"product_sku"`
	VariantName string          `gorm:"size:200" json:"variant_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
