package services

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/sirupsen/logrus"

	"github.com/shopstreet/shopstreet/app/models"
)

// MidtransGateway adapts the Midtrans Snap and CoreAPI clients to the
// PaymentGateway interface. Snap issues the payment token at checkout;
// CoreAPI verifies transaction state when a notification arrives.
type MidtransGateway struct {
	snap    snap.Client
	coreapi coreapi.Client
	log     *logrus.Entry
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	g := &MidtransGateway{log: logrus.WithField("component", "midtrans_gateway")}
	g.snap.New(serverKey, env)
	g.coreapi.New(serverKey, env)
	return g
}

func (g *MidtransGateway) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderNumber,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, snapErr := g.snap.CreateTransaction(snapReq)
	if snapErr != nil {
		g.log.WithError(snapErr).WithField("order_number", req.OrderNumber).
			Error("snap transaction creation failed")
		return nil, fmt.Errorf("create snap transaction for order %s: %w", req.OrderNumber, snapErr)
	}
	if snapResp == nil || snapResp.Token == "" {
		return nil, fmt.Errorf("snap transaction for order %s returned no token", req.OrderNumber)
	}

	return &Intent{
		TransactionID: snapResp.Token,
		ClientSecret:  snapResp.Token,
		RedirectURL:   snapResp.RedirectURL,
	}, nil
}

func (g *MidtransGateway) VerifyTransaction(ctx context.Context, orderNumber string) (*TransactionStatus, error) {
	resp, apiErr := g.coreapi.CheckTransaction(orderNumber)
	if apiErr != nil {
		return nil, fmt.Errorf("check transaction %s: %w", orderNumber, apiErr)
	}
	if resp == nil {
		return nil, fmt.Errorf("check transaction %s: empty response", orderNumber)
	}
	if resp.StatusCode == "404" {
		return nil, fmt.Errorf("transaction %s: %w", orderNumber, ErrNotFound)
	}

	return &TransactionStatus{
		OrderNumber:   resp.OrderID,
		TransactionID: resp.TransactionID,
		Status:        normalizeMidtransStatus(resp.TransactionStatus, resp.FraudStatus),
	}, nil
}

// normalizeMidtransStatus maps the Midtrans transaction/fraud status pair
// onto the payment status enum.
func normalizeMidtransStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "capture", "settlement":
		if fraudStatus != "" && fraudStatus != "accept" {
			return models.PaymentStatusFailed
		}
		return models.PaymentStatusPaid
	case "pending":
		return models.PaymentStatusPending
	case "deny", "expire", "cancel":
		return models.PaymentStatusFailed
	case "refund", "partial_refund":
		return models.PaymentStatusRefunded
	}
	return models.PaymentStatusPending
}
