package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/format"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

type CartHandler struct {
	cartService *services.CartService
	sess        sessions.SessionStore
	render      *render.Render
}

func NewCartHandler(cartService *services.CartService, sess sessions.SessionStore, rnd *render.Render) *CartHandler {
	return &CartHandler{cartService: cartService, sess: sess, render: rnd}
}

// cartPayload augments the cart with its derived totals. The totals are
// computed from the lines on every read rather than stored.
func cartPayload(cart *models.Cart) map[string]interface{} {
	total := cart.TotalPrice()
	return map[string]interface{}{
		"cart":            cart,
		"total_items":     cart.TotalItems(),
		"total_price":     total,
		"formatted_total": format.Money(total),
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(h.render, w, http.StatusOK, cartPayload(cart))
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	identity, err := resolveIdentity(h.sess, w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	var input addItemRequest
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), identity, input.ProductID, input.VariantID, input.Quantity)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, cartPayload(cart))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets an item's quantity. A quantity of zero or below removes
// the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	identity, err := resolveIdentity(h.sess, w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	var input updateItemRequest
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	itemID := mux.Vars(r)["id"]
	cart, err := h.cartService.UpdateItem(r.Context(), identity, itemID, input.Quantity)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, cartPayload(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	identity, err := resolveIdentity(h.sess, w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	itemID := mux.Vars(r)["id"]
	cart, err := h.cartService.RemoveItem(r.Context(), identity, itemID)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, cartPayload(cart))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	identity, err := resolveIdentity(h.sess, w, r)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	if err := h.cartService.Clear(r.Context(), identity); err != nil {
		respondError(h.render, w, err)
		return
	}
	respondMessage(h.render, w, http.StatusOK, "cart cleared")
}
