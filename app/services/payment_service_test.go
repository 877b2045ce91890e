package services

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstreet/shopstreet/app/models"
)

type paymentFixture struct {
	svc      *PaymentService
	orders   *fakeOrderRepo
	payments *fakePaymentRepo
	products *fakeProductRepo
	gateway  *stubGateway

	order   *models.Order
	payment *models.Payment
	product *models.Product
}

// newPaymentFixture sets up an order awaiting payment: one line of two
// units, pending payment, gateway reporting "paid" unless rescripted.
func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		orders:   newFakeOrderRepo(),
		payments: newFakePaymentRepo(),
		products: newFakeProductRepo(),
	}
	f.gateway = &stubGateway{
		verify: func(orderNumber string) (*TransactionStatus, error) {
			return &TransactionStatus{OrderNumber: orderNumber, TransactionID: "tx_1", Status: models.PaymentStatusPaid}, nil
		},
	}
	f.svc = NewPaymentService(f.orders, f.payments, f.products, &fakeTx{}, f.gateway)

	f.product = f.products.add(&models.Product{Name: "A", Sku: "A-1", Price: decimal.RequireFromString("25.00"), StockQuantity: 10, IsActive: true})

	order := &models.Order{
		OrderNumber: "SO-20260829-ABCDEF01",
		UserID:      "user-1",
		Status:      models.OrderStatusPaymentPending,
		TotalAmount: decimal.RequireFromString("50.00"),
		Items: []models.OrderItem{
			{ProductID: f.product.ID, ProductName: "A", ProductSku: "A-1", Quantity: 2, UnitPrice: decimal.RequireFromString("25.00"), TotalPrice: decimal.RequireFromString("50.00")},
		},
	}
	require.NoError(t, f.orders.Create(context.Background(), nil, order))
	f.order = f.orders.orders[order.ID]

	payment := &models.Payment{OrderID: order.ID, Method: PaymentMethodGateway, Amount: order.TotalAmount, TransactionID: "tx_1", Status: models.PaymentStatusPending}
	require.NoError(t, f.payments.Create(context.Background(), nil, payment))
	f.payment = f.payments.payments[payment.ID]
	return f
}

func (f *paymentFixture) notify(t *testing.T, gatewayStatus string) *ReconcileResult {
	t.Helper()
	result, err := f.svc.HandleNotification(context.Background(), NotificationPayload{
		OrderNumber:       f.order.OrderNumber,
		TransactionStatus: gatewayStatus,
		TransactionID:     "tx_1",
	})
	require.NoError(t, err)
	return result
}

func TestNotificationPaidAdvancesOrderAndStock(t *testing.T) {
	f := newPaymentFixture(t)

	result := f.notify(t, "settlement")

	assert.True(t, result.Applied)
	assert.Equal(t, models.PaymentStatusPaid, result.PaymentStatus)
	assert.Equal(t, models.OrderStatusPaid, result.OrderStatus)
	assert.Equal(t, models.PaymentStatusPaid, f.payment.Status)
	assert.Equal(t, models.OrderStatusPaid, f.order.Status)
	assert.Equal(t, 8, f.product.StockQuantity)
}

func TestDuplicatePaidNotificationIsNoOp(t *testing.T) {
	f := newPaymentFixture(t)

	first := f.notify(t, "settlement")
	assert.True(t, first.Applied)

	second := f.notify(t, "settlement")
	assert.False(t, second.Applied)
	assert.Equal(t, models.PaymentStatusPaid, second.PaymentStatus)

	// Stock was decremented exactly once for the two-unit line.
	assert.Equal(t, 8, f.product.StockQuantity)
	assert.Equal(t, 2, f.products.decrements[f.product.ID])
}

// Gateways retry notifications, and two deliveries of the same confirmation
// can land at once. Both read the pending payment, but the status write is a
// compare-and-swap, so only one applies the transition and the stock
// decrement.
func TestConcurrentPaidNotificationsApplyOnce(t *testing.T) {
	f := newPaymentFixture(t)

	// Hold both deliveries at the payment read until each has seen the
	// pending snapshot.
	var barrier sync.WaitGroup
	barrier.Add(2)
	f.payments.onFind = func() {
		barrier.Done()
		barrier.Wait()
	}

	results := make(chan *ReconcileResult, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := f.svc.HandleNotification(context.Background(), NotificationPayload{
				OrderNumber:       f.order.OrderNumber,
				TransactionStatus: "settlement",
				TransactionID:     "tx_1",
			})
			assert.NoError(t, err)
			results <- result
		}()
	}
	wg.Wait()
	close(results)

	applied := 0
	for result := range results {
		if result.Applied {
			applied++
		}
	}
	assert.Equal(t, 1, applied)
	assert.Equal(t, models.PaymentStatusPaid, f.payment.Status)
	assert.Equal(t, models.OrderStatusPaid, f.order.Status)
	// One two-unit line, decremented exactly once across both deliveries.
	assert.Equal(t, 2, f.products.decrements[f.product.ID])
	assert.Equal(t, 8, f.product.StockQuantity)
}

func TestStaleNotificationIsIgnored(t *testing.T) {
	f := newPaymentFixture(t)

	f.notify(t, "settlement")

	// A late "pending" must not regress the paid state.
	f.gateway.verify = func(orderNumber string) (*TransactionStatus, error) {
		return &TransactionStatus{OrderNumber: orderNumber, Status: models.PaymentStatusPending}, nil
	}
	result := f.notify(t, "pending")

	assert.False(t, result.Applied)
	assert.Equal(t, models.PaymentStatusPaid, f.payment.Status)
	assert.Equal(t, models.OrderStatusPaid, f.order.Status)
}

func TestFailedNotificationFailsOrder(t *testing.T) {
	f := newPaymentFixture(t)

	f.gateway.verify = func(orderNumber string) (*TransactionStatus, error) {
		return &TransactionStatus{OrderNumber: orderNumber, Status: models.PaymentStatusFailed}, nil
	}
	result := f.notify(t, "expire")

	assert.True(t, result.Applied)
	assert.Equal(t, models.PaymentStatusFailed, f.payment.Status)
	assert.Equal(t, models.OrderStatusFailed, f.order.Status)
	// Failure never touches stock.
	assert.Equal(t, 10, f.product.StockQuantity)
}

func TestRefundAfterPaidCancelsOrder(t *testing.T) {
	f := newPaymentFixture(t)

	f.notify(t, "settlement")

	f.gateway.verify = func(orderNumber string) (*TransactionStatus, error) {
		return &TransactionStatus{OrderNumber: orderNumber, Status: models.PaymentStatusRefunded}, nil
	}
	result := f.notify(t, "refund")

	assert.True(t, result.Applied)
	assert.Equal(t, models.PaymentStatusRefunded, f.payment.Status)
	assert.Equal(t, models.OrderStatusCancelled, f.order.Status)
	// The refunded units go back on the shelf.
	assert.Equal(t, 10, f.product.StockQuantity)
}

func TestNotificationUnknownOrder(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.HandleNotification(context.Background(), NotificationPayload{OrderNumber: "SO-00000000-NOPE"})
	assert.ErrorIs(t, err, ErrNotFound)
}

// The verified gateway state is authoritative; the webhook body's claimed
// status is never trusted directly.
func TestNotificationUsesVerifiedStatus(t *testing.T) {
	f := newPaymentFixture(t)

	f.gateway.verify = func(orderNumber string) (*TransactionStatus, error) {
		return &TransactionStatus{OrderNumber: orderNumber, Status: models.PaymentStatusPending}, nil
	}
	// Payload claims settlement but verification says pending.
	result := f.notify(t, "settlement")

	assert.False(t, result.Applied)
	assert.Equal(t, models.PaymentStatusPending, f.payment.Status)
	assert.Equal(t, models.OrderStatusPaymentPending, f.order.Status)
}
