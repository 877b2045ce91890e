package services

import "context"

// IntentRequest asks the gateway to authorize a charge. Amount is in integer
// minor-currency units; the order number is attached so the asynchronous
// confirmation can be correlated back to the order.
type IntentRequest struct {
	OrderID       string
	OrderNumber   string
	Amount        int64
	Currency      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// Intent is the gateway's handle for an authorized-but-not-settled charge.
// ClientSecret is the opaque token the client needs to complete payment.
type Intent struct {
	TransactionID string
	ClientSecret  string
	RedirectURL   string
}

// TransactionStatus is the gateway's view of a transaction, normalized onto
// the payment status enum (pending, paid, failed, refunded).
type TransactionStatus struct {
	OrderNumber   string
	TransactionID string
	Status        string
}

// PaymentGateway is the single seam to the external payment processor. It is
// constructed once at process start and passed to the checkout orchestrator
// explicitly; there is no package-level client or credential state.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	VerifyTransaction(ctx context.Context, orderNumber string) (*TransactionStatus, error)
}
