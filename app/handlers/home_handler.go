package handlers

import (
	"net/http"

	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/repositories"
)

type HomeHandler struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	render       *render.Render
}

func NewHomeHandler(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, rnd *render.Render) *HomeHandler {
	return &HomeHandler{productRepo: productRepo, categoryRepo: categoryRepo, render: rnd}
}

// Home returns the storefront landing payload: featured products, the
// latest arrivals, and the active categories.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	featured, _, err := h.productRepo.List(ctx, repositories.ProductListOptions{FeaturedOnly: true, Limit: 8})
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	latest, _, err := h.productRepo.List(ctx, repositories.ProductListOptions{Limit: 8})
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	categories, err := h.categoryRepo.ListActive(ctx)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	respondJSON(h.render, w, http.StatusOK, map[string]interface{}{
		"featured_products": featured,
		"latest_products":   latest,
		"categories":        categories,
	})
}
