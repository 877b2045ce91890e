package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/repositories"
	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

const productsPerPage = 12

type ProductHandler struct {
	productRepo   repositories.ProductRepository
	categoryRepo  repositories.CategoryRepository
	reviewService *services.ReviewService
	sess          sessions.SessionStore
	render        *render.Render
}

func NewProductHandler(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
	reviewService *services.ReviewService,
	sess sessions.SessionStore,
	rnd *render.Render,
) *ProductHandler {
	return &ProductHandler{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		reviewService: reviewService,
		sess:          sess,
		render:        rnd,
	}
}

// List serves the paginated catalog. Optional query parameters: page,
// category (slug), q (search term).
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	opts := repositories.ProductListOptions{
		CategorySlug: r.URL.Query().Get("category"),
		Query:        r.URL.Query().Get("q"),
		Limit:        productsPerPage,
		Offset:       (page - 1) * productsPerPage,
	}

	var category *models.Category
	if opts.CategorySlug != "" {
		var err error
		category, err = h.categoryRepo.FindBySlug(r.Context(), opts.CategorySlug)
		if err != nil {
			respondError(h.render, w, err)
			return
		}
		if category == nil {
			respondMessage(h.render, w, http.StatusNotFound, "category not found")
			return
		}
	}

	products, total, err := h.productRepo.List(r.Context(), opts)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	totalPages := int(total) / productsPerPage
	if int(total)%productsPerPage != 0 {
		totalPages++
	}

	payload := map[string]interface{}{
		"products":    products,
		"total":       total,
		"page":        page,
		"total_pages": totalPages,
	}
	if category != nil {
		payload["category"] = category
	}
	respondJSON(h.render, w, http.StatusOK, payload)
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	if product == nil {
		respondMessage(h.render, w, http.StatusNotFound, "product not found")
		return
	}

	reviews, err := h.reviewService.ListForProduct(r.Context(), product.ID)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	respondJSON(h.render, w, http.StatusOK, map[string]interface{}{
		"product": product,
		"reviews": reviews,
	})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.ListActive(r.Context())
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, categories)
}

// CreateReview records a review for a product. One review per user per
// product.
func (h *ProductHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return
	}

	slug := mux.Vars(r)["slug"]
	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	if product == nil {
		respondMessage(h.render, w, http.StatusNotFound, "product not found")
		return
	}

	var input services.ReviewInput
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.reviewService.Create(r.Context(), userID, product.ID, input)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusCreated, review)
}
