package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstreet/shopstreet/app/models"
)

func newOrderFixture(t *testing.T, status string) (*OrderService, *fakeOrderRepo, *models.User) {
	t.Helper()
	orders := newFakeOrderRepo()
	users := newFakeUserRepo()
	admin := users.add(&models.User{FirstName: "Root", LastName: "Admin", Email: "admin@example.com", Role: models.RoleAdmin})

	order := &models.Order{OrderNumber: "SO-20260829-FULFIL01", UserID: "customer-1", Status: status}
	require.NoError(t, orders.Create(context.Background(), nil, order))

	return NewOrderService(orders, users), orders, admin
}

func TestShipAndDeliver(t *testing.T) {
	svc, orders, admin := newOrderFixture(t, models.OrderStatusPaid)

	shipped, err := svc.Ship(context.Background(), admin.ID, "SO-20260829-FULFIL01", "TRACK-42")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, shipped.Status)
	assert.Equal(t, "TRACK-42", shipped.TrackingNumber)
	assert.NotNil(t, shipped.ShippedAt)

	delivered, err := svc.Deliver(context.Background(), admin.ID, "SO-20260829-FULFIL01")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)

	stored, err := orders.FindByNumber(context.Background(), "SO-20260829-FULFIL01")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)
}

func TestShipRequiresAdmin(t *testing.T) {
	svc, _, _ := newOrderFixture(t, models.OrderStatusPaid)

	_, err := svc.Ship(context.Background(), "customer-1", "SO-20260829-FULFIL01", "")
	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestShipRejectsUnpaidOrder(t *testing.T) {
	svc, _, admin := newOrderFixture(t, models.OrderStatusPaymentPending)

	_, err := svc.Ship(context.Background(), admin.ID, "SO-20260829-FULFIL01", "")
	assert.ErrorIs(t, err, ErrOrderTransition)
}

func TestDeliverRejectsUnshippedOrder(t *testing.T) {
	svc, _, admin := newOrderFixture(t, models.OrderStatusPaid)

	_, err := svc.Deliver(context.Background(), admin.ID, "SO-20260829-FULFIL01")
	assert.ErrorIs(t, err, ErrOrderTransition)
}
