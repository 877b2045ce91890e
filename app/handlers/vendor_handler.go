package handlers

import (
	"net/http"

	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/repositories"
)

type VendorHandler struct {
	vendorRepo repositories.VendorRepository
	render     *render.Render
}

func NewVendorHandler(vendorRepo repositories.VendorRepository, rnd *render.Render) *VendorHandler {
	return &VendorHandler{vendorRepo: vendorRepo, render: rnd}
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.vendorRepo.ListActive(r.Context())
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, vendors)
}
