package services

import "errors"

// Per-request, recoverable error conditions. Handlers map these onto HTTP
// status codes with errors.Is; none of them is fatal to the process.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrOwnership         = errors.New("resource does not belong to the caller")
	ErrInvalidIdentity   = errors.New("identity must be a user id or a session key")
	ErrLoginRequired     = errors.New("authenticated user required")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrProductInactive   = errors.New("product is not active")
	ErrVariantMismatch   = errors.New("variant does not belong to product")
	ErrInsufficientStock = errors.New("insufficient product stock")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrCouponInvalid     = errors.New("coupon is not valid for this order")
	ErrAdminRequired     = errors.New("admin role required")
	ErrOrderTransition   = errors.New("illegal order status transition")
	ErrGatewayFailed     = errors.New("payment gateway request failed")
	ErrEmailTaken        = errors.New("email already registered")
	ErrBadCredentials    = errors.New("invalid email or password")
	ErrAlreadyReviewed   = errors.New("product already reviewed by user")
)
