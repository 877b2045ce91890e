package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/repositories"
	"github.com/shopstreet/shopstreet/app/utils/calc"
)

// PaymentMethodGateway is the only payment method this storefront accepts;
// it routes through the external gateway.
const PaymentMethodGateway = "gateway"

type PlaceOrderInput struct {
	BillingAddressID  string `json:"billing_address_id" validate:"required"`
	ShippingAddressID string `json:"shipping_address_id" validate:"required"`
	PaymentMethod     string `json:"payment_method" validate:"required"`
	Notes             string `json:"notes"`
}

type PlaceOrderResult struct {
	Order        *models.Order `json:"order"`
	ClientSecret string        `json:"client_secret"`
	RedirectURL  string        `json:"redirect_url"`
}

// CheckoutService converts a cart into an immutable order and drives
// payment initiation. Order creation and payment-intent creation are two
// explicit phases: phase one commits the order snapshot, phase two calls the
// gateway, and a phase-two failure triggers a compensating delete of the
// order. The window in which the order exists without a payment intent is
// the documented cost of the external call not participating in the local
// transaction.
type CheckoutService struct {
	cartRepo      repositories.CartRepository
	cartItemRepo  repositories.CartItemRepository
	productRepo   repositories.ProductRepository
	userRepo      repositories.UserRepository
	addressRepo   repositories.AddressRepository
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	paymentRepo   repositories.PaymentRepository
	txm           repositories.TxManager
	gateway       PaymentGateway
	currency      string
	log           *logrus.Entry
}

func NewCheckoutService(
	cartRepo repositories.CartRepository,
	cartItemRepo repositories.CartItemRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	addressRepo repositories.AddressRepository,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	paymentRepo repositories.PaymentRepository,
	txm repositories.TxManager,
	gateway PaymentGateway,
	currency string,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		addressRepo:   addressRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		paymentRepo:   paymentRepo,
		txm:           txm,
		gateway:       gateway,
		currency:      currency,
		log:           logrus.WithField("service", "checkout"),
	}
}

// PlaceOrder validates the cart and addresses, snapshots the cart into an
// order atomically, requests a payment intent, and on success persists the
// pending payment and clears the cart. No state is mutated when validation
// fails; a gateway failure leaves no order behind and the cart untouched so
// the user can retry.
func (s *CheckoutService) PlaceOrder(ctx context.Context, identity models.Identity, input PlaceOrderInput) (*PlaceOrderResult, error) {
	if !identity.IsUser() {
		return nil, ErrLoginRequired
	}
	if input.PaymentMethod != PaymentMethodGateway {
		return nil, ErrUnsupportedMethod
	}

	user, err := s.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", identity.UserID, ErrNotFound)
	}

	billing, err := s.ownedAddress(ctx, identity, input.BillingAddressID)
	if err != nil {
		return nil, err
	}
	shipping, err := s.ownedAddress(ctx, identity, input.ShippingAddressID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.Find(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	if cart == nil {
		return nil, ErrCartEmpty
	}

	// Phase 1: snapshot the cart into order + items in one transaction.
	// The lines are read under a row lock so a concurrent cart mutation
	// cannot produce an order that differs from what gets charged.
	order := &models.Order{
		OrderNumber: generateOrderNumber(),
		UserID:      user.ID,
		Status:      models.OrderStatusCreated,
		Notes:       input.Notes,
	}
	order.SnapshotBillingAddress(billing, user.Email)
	order.SnapshotShippingAddress(shipping)

	err = s.txm.Do(ctx, func(tx *gorm.DB) error {
		items, err := s.cartRepo.GetItemsForUpdate(ctx, tx, cart.ID)
		if err != nil {
			return fmt.Errorf("lock cart items: %w", err)
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		subtotal := decimal.Zero
		for i := range items {
			item := &items[i]
			if item.Product == nil {
				return fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
			}
			if !item.Product.IsActive {
				return fmt.Errorf("product %s: %w", item.Product.Name, ErrProductInactive)
			}
			if item.Product.StockQuantity < item.Quantity {
				return fmt.Errorf("product %s: %w", item.Product.Name, ErrInsufficientStock)
			}

			unitPrice := item.UnitPrice()
			lineTotal := calc.LineTotal(unitPrice, item.Quantity)
			variantName := ""
			if item.Variant != nil {
				variantName = item.Variant.Name + ": " + item.Variant.Value
			}
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   item.ProductID,
				VariantID:   item.VariantID,
				ProductName: item.Product.Name,
				ProductSku:  item.Product.Sku,
				VariantName: variantName,
				Quantity:    item.Quantity,
				UnitPrice:   unitPrice,
				TotalPrice:  lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		order.Subtotal = subtotal
		order.TotalAmount = subtotal

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		order.Items = orderItems
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Phase 2: request the payment intent. On failure, compensate by
	// deleting the order created above; losing an order attempt beats
	// retaining a billable order with no payment path.
	intent, err := s.gateway.CreateIntent(ctx, IntentRequest{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Amount:        calc.ToMinorUnits(order.TotalAmount),
		Currency:      s.currency,
		CustomerName:  user.FullName(),
		CustomerEmail: user.Email,
		CustomerPhone: user.Phone,
	})
	if err != nil {
		s.log.WithError(err).WithField("order_number", order.OrderNumber).
			Warn("payment intent creation failed, rolling back order")
		if compErr := s.compensateOrder(ctx, order.ID); compErr != nil {
			s.log.WithError(compErr).WithField("order_id", order.ID).
				Error("compensating order delete failed")
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailed, err)
	}

	// Phase 3: persist the pending payment, advance the order and clear
	// the cart. Clearing is irreversible but the intent already exists.
	payment := &models.Payment{
		OrderID:       order.ID,
		Method:        input.PaymentMethod,
		Amount:        order.TotalAmount,
		TransactionID: intent.TransactionID,
		Status:        models.PaymentStatusPending,
	}
	err = s.txm.Do(ctx, func(tx *gorm.DB) error {
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, models.OrderStatusPaymentPending); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if err := s.cartItemRepo.DeleteByCart(ctx, tx, cart.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusPaymentPending

	s.log.WithFields(logrus.Fields{
		"order_number":   order.OrderNumber,
		"total_amount":   order.TotalAmount.StringFixed(2),
		"transaction_id": intent.TransactionID,
	}).Info("order placed, payment pending")

	return &PlaceOrderResult{
		Order:        order,
		ClientSecret: intent.ClientSecret,
		RedirectURL:  intent.RedirectURL,
	}, nil
}

func (s *CheckoutService) compensateOrder(ctx context.Context, orderID string) error {
	return s.txm.Do(ctx, func(tx *gorm.DB) error {
		if err := s.orderItemRepo.DeleteByOrder(ctx, tx, orderID); err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		if err := s.orderRepo.HardDelete(ctx, tx, orderID); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
}

func (s *CheckoutService) ownedAddress(ctx context.Context, identity models.Identity, addressID string) (*models.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, fmt.Errorf("load address: %w", err)
	}
	if address == nil {
		return nil, fmt.Errorf("address %s: %w", addressID, ErrNotFound)
	}
	if !address.BelongsTo(identity) {
		return nil, ErrOwnership
	}
	return address, nil
}

func generateOrderNumber() string {
	return fmt.Sprintf("SO-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]))
}
