package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/repositories"
	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

type AddressHandler struct {
	addressRepo repositories.AddressRepository
	sess        sessions.SessionStore
	render      *render.Render
}

func NewAddressHandler(addressRepo repositories.AddressRepository, sess sessions.SessionStore, rnd *render.Render) *AddressHandler {
	return &AddressHandler{addressRepo: addressRepo, sess: sess, render: rnd}
}

type addressInput struct {
	Title        string `json:"title" validate:"max=100"`
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	Company      string `json:"company" validate:"max=200"`
	AddressLine1 string `json:"address_line_1" validate:"required,max=255"`
	AddressLine2 string `json:"address_line_2" validate:"max=255"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	PostalCode   string `json:"postal_code" validate:"required,max=20"`
	Country      string `json:"country" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"max=20"`
	IsDefault    bool   `json:"is_default"`
}

func (in addressInput) apply(address *models.Address) {
	address.Title = in.Title
	address.FirstName = in.FirstName
	address.LastName = in.LastName
	address.Company = in.Company
	address.AddressLine1 = in.AddressLine1
	address.AddressLine2 = in.AddressLine2
	address.City = in.City
	address.State = in.State
	address.PostalCode = in.PostalCode
	address.Country = in.Country
	address.Phone = in.Phone
	address.IsDefault = in.IsDefault
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return
	}

	addresses, err := h.addressRepo.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, addresses)
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return
	}

	var input addressInput
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	address := &models.Address{UserID: userID}
	input.apply(address)

	if err := h.addressRepo.Create(r.Context(), address); err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusCreated, address)
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	address, ok := h.ownedAddress(w, r)
	if !ok {
		return
	}

	var input addressInput
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}
	input.apply(address)

	if err := h.addressRepo.Update(r.Context(), address); err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, address)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	address, ok := h.ownedAddress(w, r)
	if !ok {
		return
	}

	if err := h.addressRepo.Delete(r.Context(), address.ID); err != nil {
		respondError(h.render, w, err)
		return
	}
	respondMessage(h.render, w, http.StatusOK, "address deleted")
}

// ownedAddress loads the path's address and enforces that the logged in
// user owns it. On failure it writes the response itself.
func (h *AddressHandler) ownedAddress(w http.ResponseWriter, r *http.Request) (*models.Address, bool) {
	userID := h.sess.GetUserID(r)
	if userID == "" {
		respondError(h.render, w, services.ErrLoginRequired)
		return nil, false
	}

	address, err := h.addressRepo.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(h.render, w, err)
		return nil, false
	}
	if address == nil {
		respondMessage(h.render, w, http.StatusNotFound, "address not found")
		return nil, false
	}
	if !address.BelongsTo(models.UserIdentity(userID)) {
		respondError(h.render, w, services.ErrOwnership)
		return nil, false
	}
	return address, true
}
