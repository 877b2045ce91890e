package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{OrderStatusCreated, OrderStatusPaymentPending},
		{OrderStatusCreated, OrderStatusCancelled},
		{OrderStatusCreated, OrderStatusFailed},
		{OrderStatusPaymentPending, OrderStatusPaid},
		{OrderStatusPaymentPending, OrderStatusCancelled},
		{OrderStatusPaymentPending, OrderStatusFailed},
		{OrderStatusPaid, OrderStatusShipped},
		{OrderStatusPaid, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionOrderStatus(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{OrderStatusPaid, OrderStatusCreated},
		{OrderStatusPaid, OrderStatusPaymentPending},
		{OrderStatusShipped, OrderStatusPaid},
		{OrderStatusDelivered, OrderStatusShipped},
		{OrderStatusCancelled, OrderStatusPaid},
		{OrderStatusFailed, OrderStatusPaid},
		// Self-transition is a no-op for callers, never an edge.
		{OrderStatusPaid, OrderStatusPaid},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitionOrderStatus(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, CanTransitionPaymentStatus(PaymentStatusPending, PaymentStatusPaid))
	assert.True(t, CanTransitionPaymentStatus(PaymentStatusPending, PaymentStatusFailed))
	assert.True(t, CanTransitionPaymentStatus(PaymentStatusPaid, PaymentStatusRefunded))

	assert.False(t, CanTransitionPaymentStatus(PaymentStatusPaid, PaymentStatusPending))
	assert.False(t, CanTransitionPaymentStatus(PaymentStatusFailed, PaymentStatusPaid))
	assert.False(t, CanTransitionPaymentStatus(PaymentStatusRefunded, PaymentStatusPaid))
	assert.False(t, CanTransitionPaymentStatus(PaymentStatusPending, PaymentStatusRefunded))
	assert.False(t, CanTransitionPaymentStatus(PaymentStatusPaid, PaymentStatusPaid))
}

func TestOrderAddressSnapshot(t *testing.T) {
	address := &Address{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Phone:        "555-0100",
		AddressLine1: "1 Analytical Way",
		City:         "London",
		State:        "LDN",
		PostalCode:   "E1 6AN",
		Country:      "UK",
	}

	var order Order
	order.SnapshotBillingAddress(address, "ada@example.com")
	order.SnapshotShippingAddress(address)

	assert.Equal(t, "Ada", order.BillingFirstName)
	assert.Equal(t, "ada@example.com", order.BillingEmail)
	assert.Equal(t, "1 Analytical Way", order.ShippingAddressLine1)

	// Editing the source address afterwards must not affect the order.
	address.AddressLine1 = "2 Somewhere Else"
	assert.Equal(t, "1 Analytical Way", order.BillingAddressLine1)
}
