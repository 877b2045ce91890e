package handlers

import (
	"net/http"

	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

type AuthHandler struct {
	authService *services.AuthService
	sess        sessions.SessionStore
	render      *render.Render
}

func NewAuthHandler(authService *services.AuthService, sess sessions.SessionStore, rnd *render.Render) *AuthHandler {
	return &AuthHandler{authService: authService, sess: sess, render: rnd}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	if err := h.sess.SetUserID(w, r, user.ID); err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if err := decodeAndValidate(r, &input); err != nil {
		respondMessage(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		respondError(h.render, w, err)
		return
	}

	if err := h.sess.SetUserID(w, r, user.ID); err != nil {
		respondError(h.render, w, err)
		return
	}
	respondJSON(h.render, w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.ClearUserID(w, r); err != nil {
		respondError(h.render, w, err)
		return
	}
	respondMessage(h.render, w, http.StatusOK, "logged out")
}
