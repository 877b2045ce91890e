package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopstreet/shopstreet/app/models"
	"github.com/shopstreet/shopstreet/app/repositories"
)

// In-memory stand-ins for the repository layer. The transaction manager
// runs the function directly with a nil tx; the fakes ignore the tx
// argument, so the services exercise the same code paths they run against
// MySQL.

type fakeTx struct {
	calls int
}

func (f *fakeTx) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.calls++
	return fn(nil)
}

type fakeProductRepo struct {
	products   map[string]*models.Product
	variants   map[string]*models.ProductVariant
	decrements map[string]int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:   make(map[string]*models.Product),
		variants:   make(map[string]*models.ProductVariant),
		decrements: make(map[string]int),
	}
}

func (f *fakeProductRepo) add(p *models.Product) *models.Product {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeProductRepo) addVariant(v *models.ProductVariant) *models.ProductVariant {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	f.variants[v.ID] = v
	return v
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(ctx context.Context, opts repositories.ProductListOptions) ([]models.Product, int64, error) {
	var out []models.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) GetVariant(ctx context.Context, id string) (*models.ProductVariant, error) {
	return f.variants[id], nil
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	p, ok := f.products[productID]
	if !ok || p.StockQuantity < qty {
		return ErrInsufficientStock
	}
	p.StockQuantity -= qty
	f.decrements[productID] += qty
	return nil
}

func (f *fakeProductRepo) IncrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	if p, ok := f.products[productID]; ok {
		p.StockQuantity += qty
	}
	return nil
}

// fakeCartStore backs both the cart and cart-item repositories so a single
// item map serves both views. Upsert reproduces the ON CONFLICT increment.
type fakeCartStore struct {
	carts    map[string]*models.Cart
	items    map[string]*models.CartItem
	products *fakeProductRepo
}

func newFakeCartStore(products *fakeProductRepo) *fakeCartStore {
	return &fakeCartStore{
		carts:    make(map[string]*models.Cart),
		items:    make(map[string]*models.CartItem),
		products: products,
	}
}

func (f *fakeCartStore) GetOrCreate(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	if cart := f.find(identity); cart != nil {
		return cart, nil
	}
	cart := &models.Cart{ID: uuid.New().String(), UserID: identity.UserID, SessionKey: identity.SessionKey}
	f.carts[cart.ID] = cart
	return cart, nil
}

func (f *fakeCartStore) Find(ctx context.Context, identity models.Identity) (*models.Cart, error) {
	return f.find(identity), nil
}

func (f *fakeCartStore) find(identity models.Identity) *models.Cart {
	for _, c := range f.carts {
		if c.OwnedBy(identity) {
			return c
		}
	}
	return nil
}

func (f *fakeCartStore) GetWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	cart, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	loaded := *cart
	loaded.Items = f.itemsOf(cartID)
	return &loaded, nil
}

func (f *fakeCartStore) GetItemsForUpdate(ctx context.Context, tx *gorm.DB, cartID string) ([]models.CartItem, error) {
	return f.itemsOf(cartID), nil
}

func (f *fakeCartStore) itemsOf(cartID string) []models.CartItem {
	var out []models.CartItem
	for _, it := range f.items {
		if it.CartID != cartID {
			continue
		}
		hydrated := *it
		hydrated.Product = f.products.products[it.ProductID]
		if it.VariantID != "" {
			hydrated.Variant = f.products.variants[it.VariantID]
		}
		out = append(out, hydrated)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeCartStore) Upsert(ctx context.Context, item *models.CartItem) error {
	for _, existing := range f.items {
		if existing.CartID == item.CartID && existing.ProductID == item.ProductID && existing.VariantID == item.VariantID {
			existing.Quantity += item.Quantity
			return nil
		}
	}
	stored := *item
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	f.items[stored.ID] = &stored
	return nil
}

func (f *fakeCartStore) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	hydrated := *it
	hydrated.Cart = f.carts[it.CartID]
	hydrated.Product = f.products.products[it.ProductID]
	return &hydrated, nil
}

func (f *fakeCartStore) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	it, ok := f.items[id]
	if !ok {
		return fmt.Errorf("cart item %s not found", id)
	}
	it.Quantity = quantity
	return nil
}

func (f *fakeCartStore) Delete(ctx context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeCartStore) DeleteByCart(ctx context.Context, tx *gorm.DB, cartID string) error {
	for id, it := range f.items {
		if it.CartID == cartID {
			delete(f.items, id)
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeAddressRepo struct {
	addresses map[string]*models.Address
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[string]*models.Address)}
}

func (f *fakeAddressRepo) add(a *models.Address) *models.Address {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	f.addresses[a.ID] = a
	return a
}

func (f *fakeAddressRepo) Create(ctx context.Context, address *models.Address) error {
	f.add(address)
	return nil
}

func (f *fakeAddressRepo) Update(ctx context.Context, address *models.Address) error {
	f.addresses[address.ID] = address
	return nil
}

func (f *fakeAddressRepo) Delete(ctx context.Context, id string) error {
	delete(f.addresses, id)
	return nil
}

func (f *fakeAddressRepo) FindByID(ctx context.Context, id string) (*models.Address, error) {
	return f.addresses[id], nil
}

func (f *fakeAddressRepo) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	var out []models.Address
	for _, a := range f.addresses {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[string]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	for _, o := range f.orders {
		if o.OrderNumber == orderNumber {
			out := *o
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID, status string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) SetTracking(ctx context.Context, orderID, trackingNumber string) error {
	if o, ok := f.orders[orderID]; ok {
		o.TrackingNumber = trackingNumber
	}
	return nil
}

func (f *fakeOrderRepo) MarkShipped(ctx context.Context, orderID string, at time.Time) error {
	if o, ok := f.orders[orderID]; ok {
		o.Status = models.OrderStatusShipped
		o.ShippedAt = &at
	}
	return nil
}

func (f *fakeOrderRepo) MarkDelivered(ctx context.Context, orderID string, at time.Time) error {
	if o, ok := f.orders[orderID]; ok {
		o.Status = models.OrderStatusDelivered
		o.DeliveredAt = &at
	}
	return nil
}

func (f *fakeOrderRepo) HardDelete(ctx context.Context, tx *gorm.DB, orderID string) error {
	delete(f.orders, orderID)
	return nil
}

type fakeOrderItemRepo struct {
	items []models.OrderItem
}

func (f *fakeOrderItemRepo) BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeOrderItemRepo) DeleteByOrder(ctx context.Context, tx *gorm.DB, orderID string) error {
	kept := f.items[:0]
	for _, it := range f.items {
		if it.OrderID != orderID {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeOrderItemRepo) byOrder(orderID string) []models.OrderItem {
	var out []models.OrderItem
	for _, it := range f.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
	// onFind, when set, runs after each FindByOrderID so a test can hold
	// several callers at the read before any of them writes.
	onFind func()
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*models.Payment)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	stored := *payment
	f.mu.Lock()
	f.payments[payment.ID] = &stored
	f.mu.Unlock()
	return nil
}

func (f *fakePaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	f.mu.Lock()
	var found *models.Payment
	for _, p := range f.payments {
		if p.OrderID == orderID {
			out := *p
			found = &out
			break
		}
	}
	f.mu.Unlock()
	if f.onFind != nil {
		f.onFind()
	}
	return found, nil
}

func (f *fakePaymentRepo) TransitionStatus(ctx context.Context, tx *gorm.DB, paymentID, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[paymentID]
	if !ok {
		return false, fmt.Errorf("payment %s not found", paymentID)
	}
	if p.Status != from {
		return false, nil
	}
	p.Status = to
	return true, nil
}

type fakeWishlistRepo struct {
	wishlists map[string]*models.Wishlist
	items     map[string]*models.WishlistItem
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{
		wishlists: make(map[string]*models.Wishlist),
		items:     make(map[string]*models.WishlistItem),
	}
}

func (f *fakeWishlistRepo) GetOrCreateByUser(ctx context.Context, userID string) (*models.Wishlist, error) {
	for _, w := range f.wishlists {
		if w.UserID == userID {
			return w, nil
		}
	}
	w := &models.Wishlist{ID: uuid.New().String(), UserID: userID}
	f.wishlists[w.ID] = w
	return w, nil
}

func (f *fakeWishlistRepo) GetWithItems(ctx context.Context, userID string) (*models.Wishlist, error) {
	w, err := f.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	loaded := *w
	loaded.Items = nil
	for _, it := range f.items {
		if it.WishlistID == w.ID {
			loaded.Items = append(loaded.Items, *it)
		}
	}
	return &loaded, nil
}

func (f *fakeWishlistRepo) AddItemIfAbsent(ctx context.Context, wishlistID, productID string) (bool, error) {
	for _, it := range f.items {
		if it.WishlistID == wishlistID && it.ProductID == productID {
			return false, nil
		}
	}
	it := &models.WishlistItem{ID: uuid.New().String(), WishlistID: wishlistID, ProductID: productID}
	f.items[it.ID] = it
	return true, nil
}

func (f *fakeWishlistRepo) GetItem(ctx context.Context, itemID string) (*models.WishlistItem, error) {
	return f.items[itemID], nil
}

func (f *fakeWishlistRepo) DeleteItem(ctx context.Context, itemID string) error {
	delete(f.items, itemID)
	return nil
}

type fakeCouponRepo struct {
	coupons map[string]*models.Coupon
}

func (f *fakeCouponRepo) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return f.coupons[code], nil
}

// stubGateway lets each test script the gateway's responses.
type stubGateway struct {
	createIntent func(req IntentRequest) (*Intent, error)
	verify       func(orderNumber string) (*TransactionStatus, error)
	intentCalls  int
}

func (g *stubGateway) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	g.intentCalls++
	return g.createIntent(req)
}

func (g *stubGateway) VerifyTransaction(ctx context.Context, orderNumber string) (*TransactionStatus, error) {
	return g.verify(orderNumber)
}
