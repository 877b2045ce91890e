package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	render         *render.Render
}

func NewPaymentHandler(paymentService *services.PaymentService, rnd *render.Render) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, render: rnd}
}

// Notification is the gateway's server-to-server webhook. It must answer
// 200 for anything that was processed, including duplicates and stale
// confirmations, or the gateway keeps retrying.
func (h *PaymentHandler) Notification(w http.ResponseWriter, r *http.Request) {
	var payload services.NotificationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, "invalid notification body")
		return
	}

	result, err := h.paymentService.HandleNotification(r.Context(), payload)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"order_number":   result.OrderNumber,
		"payment_status": result.PaymentStatus,
		"applied":        result.Applied,
	}).Info("payment notification processed")

	respondJSON(h.render, w, http.StatusOK, result)
}
