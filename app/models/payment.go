package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

var paymentTransitions = map[string][]string{
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:    {PaymentStatusRefunded},
}

func CanTransitionPaymentStatus(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Payment records one gateway attempt for an order. It is mutated only by
// gateway confirmation, never directly by the user.
type Payment struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID       string          `gorm:"size:36;not null;index" json:"order_id"`
	Order         Order           `gorm:"foreignKey:OrderID" json:"-"`
	Method        string          `gorm:"size:50;not null" json:"method"`
	Amount        decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"amount"`
	TransactionID string          `gorm:"size:255;index" json:"transaction_id"`
	Status        string          `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
