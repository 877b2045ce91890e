package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is owned by exactly one of an authenticated user or an anonymous
// session. Totals are derived from the current line items on every read and
// never stored, so they cannot drift from the line state.
type Cart struct {
	ID         string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID     string     `gorm:"size:36;index" json:"user_id,omitempty"`
	SessionKey string     `gorm:"size:64;index" json:"-"`
	Items      []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// OwnedBy is the single authorization predicate for cart access.
func (c *Cart) OwnedBy(id Identity) bool {
	if id.IsUser() {
		return c.UserID == id.UserID
	}
	return c.SessionKey != "" && c.SessionKey == id.SessionKey
}

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

// TotalPrice is the sum of line totals over the current items.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
