package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/unrolled/render"
	"gorm.io/gorm"

	"github.com/shopstreet/shopstreet/app/models"
)

// stubSession pins the session to a fixed user.
type stubSession struct {
	userID string
}

func (s *stubSession) GetUserID(r *http.Request) string { return s.userID }
func (s *stubSession) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	s.userID = userID
	return nil
}
func (s *stubSession) ClearUserID(w http.ResponseWriter, r *http.Request) error {
	s.userID = ""
	return nil
}
func (s *stubSession) EnsureCartKey(w http.ResponseWriter, r *http.Request) (string, error) {
	return "cart-key", nil
}
func (s *stubSession) PeekCartKey(r *http.Request) string { return "cart-key" }

// stubOrderRepo serves a fixed set of orders by number.
type stubOrderRepo struct {
	orders map[string]*models.Order
}

func (s *stubOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return nil
}

func (s *stubOrderRepo) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.orders[orderNumber], nil
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID, status string) error {
	return nil
}

func (s *stubOrderRepo) SetTracking(ctx context.Context, orderID, trackingNumber string) error {
	return nil
}

func (s *stubOrderRepo) MarkShipped(ctx context.Context, orderID string, at time.Time) error {
	return nil
}

func (s *stubOrderRepo) MarkDelivered(ctx context.Context, orderID string, at time.Time) error {
	return nil
}

func (s *stubOrderRepo) HardDelete(ctx context.Context, tx *gorm.DB, orderID string) error {
	return nil
}

func newSuccessHandler(userID string, orders ...*models.Order) *CheckoutHandler {
	repo := &stubOrderRepo{orders: make(map[string]*models.Order)}
	for _, o := range orders {
		repo.orders[o.OrderNumber] = o
	}
	return NewCheckoutHandler(nil, nil, nil, repo, &stubSession{userID: userID}, render.New())
}

func getSuccess(h *CheckoutHandler, orderNumber string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/checkout/success?order_id="+orderNumber, nil)
	rec := httptest.NewRecorder()
	h.Success(rec, req)
	return rec
}

func TestCheckoutSuccessReturnsOwnOrder(t *testing.T) {
	order := &models.Order{OrderNumber: "SO-20260829-ABCDEF01", UserID: "user-1", Status: models.OrderStatusPaymentPending}
	h := newSuccessHandler("user-1", order)

	rec := getSuccess(h, order.OrderNumber)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), order.OrderNumber)
	assert.Contains(t, rec.Body.String(), models.OrderStatusPaymentPending)
}

// A foreign order number reads exactly like a missing one, so the callback
// leaks neither existence nor status of other users' orders.
func TestCheckoutSuccessHidesForeignOrder(t *testing.T) {
	order := &models.Order{OrderNumber: "SO-20260829-ABCDEF01", UserID: "user-1", Status: models.OrderStatusPaid}
	h := newSuccessHandler("user-2", order)

	foreign := getSuccess(h, order.OrderNumber)
	missing := getSuccess(h, "SO-00000000-NOPE")

	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String())
	assert.NotContains(t, foreign.Body.String(), models.OrderStatusPaid)
}

func TestCheckoutSuccessRequiresLogin(t *testing.T) {
	order := &models.Order{OrderNumber: "SO-20260829-ABCDEF01", UserID: "user-1"}
	h := newSuccessHandler("", order)

	rec := getSuccess(h, order.OrderNumber)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
