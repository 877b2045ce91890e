package handlers

import (
	"net/http"

	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/format"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

type CouponHandler struct {
	couponService *services.CouponService
	cartService   *services.CartService
	sess          sessions.SessionStore
	render        *render.Render
}

func NewCouponHandler(couponService *services.CouponService, cartService *services.CartService, sess sessions.SessionStore, rnd *render.Render) *CouponHandler {
	return &CouponHandler{couponService: couponService, cartService: cartService, sess: sess, render: rnd}
}

type validateCouponRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

// Validate quotes a coupon against the caller's current cart subtotal.
// It is a preview only; placing the order does not apply the discount.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	identity, err := resolveIdentity(h.sess, w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	var input validateCouponRequest
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), identity)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	quote, err := h.couponService.Validate(r.Context(), input.Code, cart.TotalPrice())
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	respondJSON(h.render, w, http.StatusOK, map[string]interface{}{
		"code":               quote.Code,
		"discount":           quote.Discount,
		"formatted_discount": format.Money(quote.Discount),
	})
}
