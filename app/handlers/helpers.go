package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

var validate = validator.New()

type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(rnd *render.Render, w http.ResponseWriter, status int, data interface{}) {
	_ = rnd.JSON(w, status, apiResponse{Success: status < 400, Data: data})
}

func respondMessage(rnd *render.Render, w http.ResponseWriter, status int, message string) {
	_ = rnd.JSON(w, status, apiResponse{Success: status < 400, Message: message})
}

// respondError maps service errors onto HTTP statuses. Anything that is not
// one of the known sentinels is a 500 and gets logged; the known ones are
// client errors and are returned verbatim.
func respondError(rnd *render.Render, w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrOwnership),
		errors.Is(err, services.ErrAdminRequired):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrLoginRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrBadCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidIdentity),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrProductInactive),
		errors.Is(err, services.ErrVariantMismatch),
		errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrUnsupportedMethod),
		errors.Is(err, services.ErrCouponInvalid),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyReviewed):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrOrderTransition):
		status = http.StatusConflict
	case errors.Is(err, services.ErrGatewayFailed):
		status = http.StatusBadGateway
	default:
		logrus.WithError(err).Error("unhandled service error")
		respondMessage(rnd, w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondMessage(rnd, w, status, err.Error())
}

func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

// resolveIdentity yields the cart owner for this request: the logged in
// user when there is one, otherwise the session's cart key. Establishing
// the key writes the session cookie, so this needs the ResponseWriter.
func resolveIdentity(sess sessions.SessionStore, w http.ResponseWriter, r *http.Request) (models.Identity, error) {
	if userID := sess.GetUserID(r); userID != "" {
		return models.UserIdentity(userID), nil
	}
	key, err := sess.EnsureCartKey(w, r)
	if err != nil {
		return models.Identity{}, err
	}
	return models.SessionIdentity(key), nil
}
