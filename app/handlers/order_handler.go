package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/repositories"
	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

type OrderHandler struct {
	orderRepo    repositories.OrderRepository
	paymentRepo  repositories.PaymentRepository
	orderService *services.OrderService
	sess         sessions.SessionStore
	render       *render.Render
}

func NewOrderHandler(orderRepo repositories.OrderRepository, paymentRepo repositories.PaymentRepository, orderService *services.OrderService, sess sessions.SessionStore, rnd *render.Render) *OrderHandler {
	return &OrderHandler{orderRepo: orderRepo, paymentRepo: paymentRepo, orderService: orderService, sess: sess, render: rnd}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return
	}

	orders, err := h.orderRepo.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, orders)
}

func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return
	}

	order, err := h.orderRepo.FindByNumber(r.Context(), mux.Vars(r)["number"])
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	if order == nil || order.UserID != userID {
		// A foreign order number reads the same as a missing one.
		respondMessage(h.render, w, http.StatusNotFound, "order not found")
		return
	}

	payment, err := h.paymentRepo.FindByOrderID(r.Context(), order.ID)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	respondJSON(h.render, w, http.StatusOK, map[string]interface{}{
		"order":   order,
		"payment": payment,
	})
}

type shipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"max=100"`
}

// Ship is an admin action moving a paid order to shipped.
func (h *OrderHandler) Ship(w http.ResponseWriter, r *http.Request) {
	var input shipOrderRequest
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderService.Ship(r.Context(), h.sess.GetUserID(r), mux.Vars(r)["number"], input.TrackingNumber)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, order)
}

// Deliver is an admin action moving a shipped order to delivered.
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Deliver(r.Context(), h.sess.GetUserID(r), mux.Vars(r)["number"])
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, order)
}
