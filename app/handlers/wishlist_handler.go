package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

type WishlistHandler struct {
	wishlistService *services.WishlistService
	sess            sessions.SessionStore
	render          *render.Render
}

func NewWishlistHandler(wishlistService *services.WishlistService, sess sessions.SessionStore, rnd *render.Render) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, sess: sess, render: rnd}
}

func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return
	}

	wishlist, err := h.wishlistService.Get(r.Context(), userID)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, wishlist)
}

type addWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// AddItem puts a product on the wishlist. Adding a product that is already
// there succeeds without creating a second entry.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return
	}

	var input addWishlistRequest
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := h.wishlistService.AddIfAbsent(r.Context(), userID, input.ProductID)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	if added {
		respondMessage(h.render, w, http.StatusCreated, "added to wishlist")
		return
	}
	respondMessage(h.render, w, http.StatusOK, "already on wishlist")
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return
	}

	itemID := mux.Vars(r)["id"]
	if err := h.wishlistService.RemoveItem(r.Context(), userID, itemID); err != nil {
		respondError(h.render, w, err)
		return
	}
	respondMessage(h.render, w, http.StatusOK, "removed from wishlist")
}
