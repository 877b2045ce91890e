package handlers

import (
	"net/http"

	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/repositories"
	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/format"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	cartService     *services.CartService
	addressRepo     repositories.AddressRepository
	orderRepo       repositories.OrderRepository
	sess            sessions.SessionStore
	render          *render.Render
}

func NewCheckoutHandler(
	checkoutService *services.CheckoutService,
	cartService *services.CartService,
	addressRepo repositories.AddressRepository,
	orderRepo repositories.OrderRepository,
	sess sessions.SessionStore,
	rnd *render.Render,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		cartService:     cartService,
		addressRepo:     addressRepo,
		orderRepo:       orderRepo,
		sess:            sess,
		render:          rnd,
	}
}

// Initiate returns everything the checkout page needs: the cart with its
// derived totals and the user's saved addresses.
func (h *CheckoutHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return
	}

	identity, err := resolveIdentity(h.sess, w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), identity)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	if cart.IsEmpty() {
		respondError(h.render, w, services.ErrCartEmpty)
		return
	}

	addresses, err := h.addressRepo.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	total := cart.TotalPrice()
	respondJSON(h.render, w, http.StatusOK, map[string]interface{}{
		"cart":            cart,
		"total_items":     cart.TotalItems(),
		"total_price":     total,
		"formatted_total": format.Money(total),
		"addresses":       addresses,
	})
}

// Create places the order from the current cart: snapshot, payment
// intent, pending payment record. The response carries the client secret
// the frontend hands to the gateway widget.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := resolveIdentity(h.sess, w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	var input services.PlaceOrderInput
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.checkoutService.PlaceOrder(r.Context(), identity, input)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusCreated, result)
}

// Success is the browser redirect target after the gateway flow finishes.
// It only reads state; the authoritative status change comes through the
// server-to-server notification.
func (h *CheckoutHandler) Success(w http.ResponseWriter, r *http.Request) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return
	}

	orderNumber := r.URL.Query().Get("order_id")
	if orderNumber == "" {
		respondMessage(h.render, w, http.StatusBadRequest, "missing order_id")
		return
	}

	order, err := h.orderRepo.FindByNumber(r.Context(), orderNumber)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	// Someone else's order reads the same as a missing one.
	if order == nil || order.UserID != userID {
		respondMessage(h.render, w, http.StatusNotFound, "order not found")
		return
	}
	respondJSON(h.render, w, http.StatusOK, map[string]interface{}{
		"order_number": order.OrderNumber,
		"status":       order.Status,
	})
}

func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	respondMessage(h.render, w, http.StatusOK, "payment cancelled; the order remains payable")
}
