package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/repositories"
)

// NotificationPayload is the gateway's asynchronous confirmation, correlated
// to an order by its order number. The payload is advisory: the authoritative
// status is re-read from the gateway's status API before anything is applied.
type NotificationPayload struct {
	OrderNumber       string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
}

// ReconcileResult describes what a notification did. Applied is false when
// the notification was a duplicate or arrived out of order and changed
// nothing; that outcome is a success, not an error.
type ReconcileResult struct {
	OrderNumber   string `json:"order_number"`
	PaymentStatus string `json:"payment_status"`
	OrderStatus   string `json:"order_status"`
	Applied       bool   `json:"applied"`
}

// PaymentService reconciles gateway confirmations onto payment and order
// records. Transitions are monotonic and repetition-safe: a duplicate
// confirmation is a no-op, and stock is decremented exactly once, on the
// pending→paid edge.
type PaymentService struct {
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	productRepo repositories.ProductRepository
	txm         repositories.TxManager
	gateway     PaymentGateway
	log         *logrus.Entry
}

func NewPaymentService(
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	productRepo repositories.ProductRepository,
	txm repositories.TxManager,
	gateway PaymentGateway,
) *PaymentService {
	return &PaymentService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		productRepo: productRepo,
		txm:         txm,
		gateway:     gateway,
		log:         logrus.WithField("service", "payment"),
	}
}

func (s *PaymentService) HandleNotification(ctx context.Context, payload NotificationPayload) (*ReconcileResult, error) {
	verified, err := s.gateway.VerifyTransaction(ctx, payload.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("verify transaction: %w", err)
	}

	order, err := s.orderRepo.FindByNumber(ctx, payload.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", payload.OrderNumber, ErrNotFound)
	}

	payment, err := s.paymentRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load payment: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("payment for order %s: %w", order.ID, ErrNotFound)
	}

	result := &ReconcileResult{
		OrderNumber:   order.OrderNumber,
		PaymentStatus: payment.Status,
		OrderStatus:   order.Status,
	}

	target := verified.Status
	if payment.Status == target {
		s.log.WithFields(logrus.Fields{
			"order_number": order.OrderNumber,
			"status":       target,
		}).Info("duplicate confirmation, no-op")
		return result, nil
	}
	if !models.CanTransitionPaymentStatus(payment.Status, target) {
		// Stale or out-of-order notification; current state wins.
		s.log.WithFields(logrus.Fields{
			"order_number": order.OrderNumber,
			"current":      payment.Status,
			"incoming":     target,
		}).Warn("ignoring non-monotonic payment transition")
		return result, nil
	}

	orderTarget := orderStatusFor(target)
	applied := false
	err = s.txm.Do(ctx, func(tx *gorm.DB) error {
		// The status check above was a snapshot; the write itself is a
		// compare-and-swap so that concurrent deliveries of the same
		// confirmation apply it exactly once.
		won, err := s.paymentRepo.TransitionStatus(ctx, tx, payment.ID, payment.Status, target)
		if err != nil {
			return fmt.Errorf("transition payment status: %w", err)
		}
		if !won {
			return nil
		}
		applied = true
		if orderTarget != "" && models.CanTransitionOrderStatus(order.Status, orderTarget) {
			if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, orderTarget); err != nil {
				return fmt.Errorf("update order status: %w", err)
			}
			result.OrderStatus = orderTarget
		}
		switch target {
		case models.PaymentStatusPaid:
			// Losing the swap above skips this block, so the decrement
			// runs at most once per order.
			for i := range order.Items {
				item := &order.Items[i]
				if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
					return fmt.Errorf("decrement stock: %w", err)
				}
			}
		case models.PaymentStatusRefunded:
			// A refund only follows paid, so these units were decremented
			// and go back on the shelf.
			for i := range order.Items {
				item := &order.Items[i]
				if err := s.productRepo.IncrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
					return fmt.Errorf("restock: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		s.log.WithFields(logrus.Fields{
			"order_number": order.OrderNumber,
			"status":       target,
		}).Info("confirmation already applied by a concurrent delivery")
		return result, nil
	}

	result.PaymentStatus = target
	result.Applied = true
	s.log.WithFields(logrus.Fields{
		"order_number":   order.OrderNumber,
		"payment_status": result.PaymentStatus,
		"order_status":   result.OrderStatus,
	}).Info("payment reconciled")
	return result, nil
}

// orderStatusFor maps a payment status onto the order state machine.
func orderStatusFor(paymentStatus string) string {
	switch paymentStatus {
	case models.PaymentStatusPaid:
		return models.OrderStatusPaid
	case models.PaymentStatusFailed:
		return models.OrderStatusFailed
	case models.PaymentStatusRefunded:
		return models.OrderStatusCancelled
	}
	return ""
}
