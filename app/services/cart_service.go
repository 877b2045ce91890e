package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/repositories"
)

type CartService struct {
	cartRepo     repositories.CartRepository
	cartItemRepo repositories.CartItemRepository
	productRepo  repositories.ProductRepository
	txm          repositories.TxManager
	log          *logrus.Entry
}

func NewCartService(
	cartRepo repositories.CartRepository,
	cartItemRepo repositories.CartItemRepository,
	productRepo repositories.ProductRepository,
	txm repositories.TxManager,
) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		txm:          txm,
		log:          logrus.WithField("service", "cart"),
	}
}

// GetCart returns the identity's cart with its lines, creating an empty cart
// on first use.
func (s *CartService) GetCart(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, ErrInvalidIdentity
	}
	cart, err := s.cartRepo.GetOrCreate(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	full, err := s.cartRepo.GetWithItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}
	if full == nil {
		return cart, nil
	}
	return full, nil
}

// AddItem adds quantity of a product (and optional variant) to the
// identity's cart. A repeated add for the same (product, variant) increments
// the existing line instead of creating a duplicate; the increment is an
// atomic upsert backed by the store's uniqueness constraint.
func (s *CartService) AddItem(ctx context.Context, identity models.Identity, productID, variantID string, quantity int) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, ErrInvalidIdentity
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}

	if variantID != "" {
		variant, err := s.productRepo.GetVariant(ctx, variantID)
		if err != nil {
			return nil, fmt.Errorf("load variant: %w", err)
		}
		if variant == nil {
			return nil, fmt.Errorf("variant %s: %w", variantID, ErrNotFound)
		}
		if variant.ProductID != product.ID {
			return nil, ErrVariantMismatch
		}
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		VariantID: variantID,
		Quantity:  quantity,
	}
	if err := s.cartItemRepo.Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"cart_id":    cart.ID,
		"product_id": product.ID,
		"quantity":   quantity,
	}).Debug("item added to cart")

	return s.cartRepo.GetWithItems(ctx, cart.ID)
}

// UpdateItem sets a line's quantity; a quantity of zero or less removes the
// line. Ownership is verified before any mutation.
func (s *CartService) UpdateItem(ctx context.Context, identity models.Identity, itemID string, quantity int) (*models.Cart, error) {
	item, err := s.ownedItem(ctx, identity, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.cartItemRepo.Delete(ctx, item.ID); err != nil {
			return nil, fmt.Errorf("delete cart item: %w", err)
		}
	} else {
		if err := s.cartItemRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
			return nil, fmt.Errorf("update cart item quantity: %w", err)
		}
	}

	return s.cartRepo.GetWithItems(ctx, item.CartID)
}

// RemoveItem deletes one line of the identity's cart.
func (s *CartService) RemoveItem(ctx context.Context, identity models.Identity, itemID string) (*models.Cart, error) {
	item, err := s.ownedItem(ctx, identity, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartItemRepo.Delete(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("delete cart item: %w", err)
	}
	return s.cartRepo.GetWithItems(ctx, item.CartID)
}

// Clear removes every line of the identity's cart. Clearing a cart that does
// not exist yet is a no-op.
func (s *CartService) Clear(ctx context.Context, identity models.Identity) error {
	if !identity.Valid() {
		return ErrInvalidIdentity
	}
	cart, err := s.cartRepo.Find(ctx, identity)
	if err != nil {
		return fmt.Errorf("find cart: %w", err)
	}
	if cart == nil {
		return nil
	}
	return s.txm.Do(ctx, func(tx *gorm.DB) error {
		return s.cartItemRepo.DeleteByCart(ctx, tx, cart.ID)
	})
}

// ownedItem loads a cart line and applies the ownership predicate. Failures
// disclose nothing about the real owner.
func (s *CartService) ownedItem(ctx context.Context, identity models.Identity, itemID string) (*models.CartItem, error) {
	if !identity.Valid() {
		return nil, ErrInvalidIdentity
	}
	item, err := s.cartItemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("load cart item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	if item.Cart == nil || !item.Cart.OwnedBy(identity) {
		return nil, ErrOwnership
	}
	return item, nil
}
