package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusCreated        = "created"
	OrderStatusPaymentPending = "payment_pending"
	OrderStatusPaid           = "paid"
	OrderStatusShipped        = "shipped"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
	OrderStatusFailed         = "failed"
)

// orderTransitions lists the permitted forward edges of the order state
// machine. Anything not listed is rejected, which keeps status changes
// monotonic under repeated gateway notifications.
var orderTransitions = map[string][]string{
	OrderStatusCreated:        {OrderStatusPaymentPending, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusPaymentPending: {OrderStatusPaid, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusPaid:           {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:        {OrderStatusDelivered},
}

// CanTransitionOrderStatus reports whether from→to is a legal edge.
// A transition to the current status is not an edge; callers treat it as a
// no-op, not an error.
func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is an immutable snapshot of a purchase intent. Billing/shipping
// fields are copied from the chosen addresses at creation so later address
// edits never alter a placed order. Only status transitions and fulfillment
// metadata change after creation.
type Order struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderNumber string `gorm:"size:32;not null;uniqueIndex" json:"order_number"`
	UserID      string `gorm:"size:36;index" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID" json:"-"`
	Status      string `gorm:"size:20;not null;default:'created'" json:"status"`

	BillingFirstName    string `gorm:"size:100;not null" json:"billing_first_name"`
	BillingLastName     string `gorm:"size:100;not null" json:"billing_last_name"`
	BillingEmail        string `gorm:"size:100;not null" json:"billing_email"`
	BillingPhone        string `gorm:"size:20" json:"billing_phone"`
	BillingAddressLine1 string `gorm:"size:255;not null" json:"billing_address_line_1"`
	BillingAddressLine2 string `gorm:"size:255" json:"billing_address_line_2"`
	BillingCity         string `gorm:"size:100;not null" json:"billing_city"`
	BillingState        string `gorm:"size:100;not null" json:"billing_state"`
	BillingPostalCode   string `gorm:"size:20;not null" json:"billing_postal_code"`
	BillingCountry      string `gorm:"size:100;not null" json:"billing_country"`

	ShippingFirstName    string `gorm:"size:100;not null" json:"shipping_first_name"`
	ShippingLastName     string `gorm:"size:100;not null" json:"shipping_last_name"`
	ShippingAddressLine1 string `gorm:"size:255;not null" json:"shipping_address_line_1"`
	ShippingAddressLine2 string `gorm:"size:255" json:"shipping_address_line_2"`
	ShippingCity         string `gorm:"size:100;not null" json:"shipping_city"`
	ShippingState        string `gorm:"size:100;not null" json:"shipping_state"`
	ShippingPostalCode   string `gorm:"size:20;not null" json:"shipping_postal_code"`
	ShippingCountry      string `gorm:"size:100;not null" json:"shipping_country"`

	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"subtotal"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"shipping_cost"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"discount_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_amount"`

	Notes          string     `gorm:"type:text" json:"notes"`
	TrackingNumber string     `gorm:"size:100" json:"tracking_number"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// SnapshotBillingAddress copies the billing block from an address.
func (o *Order) SnapshotBillingAddress(a *Address, email string) {
	o.BillingFirstName = a.FirstName
	o.BillingLastName = a.LastName
	o.BillingEmail = email
	o.BillingPhone = a.Phone
	o.BillingAddressLine1 = a.AddressLine1
	o.BillingAddressLine2 = a.AddressLine2
	o.BillingCity = a.City
	o.BillingState = a.State
	o.BillingPostalCode = a.PostalCode
	o.BillingCountry = a.Country
}

// SnapshotShippingAddress copies the shipping block from an address.
func (o *Order) SnapshotShippingAddress(a *Address) {
	o.ShippingFirstName = a.FirstName
	o.ShippingLastName = a.LastName
	o.ShippingAddressLine1 = a.AddressLine1
	o.ShippingAddressLine2 = a.AddressLine2
	o.ShippingCity = a.City
	o.ShippingState = a.State
	o.ShippingPostalCode = a.PostalCode
	o.ShippingCountry = a.Country
}
