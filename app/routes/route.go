package routes

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"

	"github.com/shopstreet/shopstreet/app/configs"
	"github.com/shopstreet/shopstreet/app/handlers"
	"github.com/shopstreet/shopstreet/app/middlewares"
	"github.com/shopstreet/shopstreet/app/repositories"
	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

// NewRouter wires repositories, services and handlers into the HTTP
// surface. The payment notification webhook is registered on the parent
// router, before CSRF protection, because the gateway cannot send a CSRF
// token; everything browser-facing goes through the protected subrouter.
func NewRouter(db *gorm.DB, env configs.ENV, sess sessions.SessionStore, gateway services.PaymentGateway, csrfKey []byte) http.Handler {
	rnd := render.New()

	userRepo := repositories.NewUserRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	couponRepo := repositories.NewCouponRepository(db)
	txm := repositories.NewTxManager(db)

	authService := services.NewAuthService(userRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	cartService := services.NewCartService(cartRepo, cartItemRepo, productRepo, txm)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo)
	checkoutService := services.NewCheckoutService(cartRepo, cartItemRepo, productRepo, userRepo, addressRepo, orderRepo, orderItemRepo, paymentRepo, txm, gateway, env.Currency)
	paymentService := services.NewPaymentService(orderRepo, paymentRepo, productRepo, txm, gateway)
	couponService := services.NewCouponService(couponRepo)
	orderService := services.NewOrderService(orderRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService, sess, rnd)
	homeHandler := handlers.NewHomeHandler(productRepo, categoryRepo, rnd)
	productHandler := handlers.NewProductHandler(productRepo, categoryRepo, reviewService, sess, rnd)
	cartHandler := handlers.NewCartHandler(cartService, sess, rnd)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService, sess, rnd)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cartService, addressRepo, orderRepo, sess, rnd)
	paymentHandler := handlers.NewPaymentHandler(paymentService, rnd)
	orderHandler := handlers.NewOrderHandler(orderRepo, paymentRepo, orderService, sess, rnd)
	addressHandler := handlers.NewAddressHandler(addressRepo, sess, rnd)
	vendorHandler := handlers.NewVendorHandler(vendorRepo, rnd)
	couponHandler := handlers.NewCouponHandler(couponService, cartService, sess, rnd)

	root := mux.NewRouter()
	root.Use(middlewares.Recover, middlewares.RequestLogger)

	// Server-to-server, no CSRF.
	root.HandleFunc("/payments/notification", paymentHandler.Notification).Methods(http.MethodPost)

	r := root.PathPrefix("/").Subrouter()
	r.Use(csrf.Protect(csrfKey, csrf.Secure(env.IsProduction()), csrf.Path("/")))

	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	r.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/products/{slug}", productHandler.Detail).Methods(http.MethodGet)
	r.HandleFunc("/products/{slug}/reviews", productHandler.CreateReview).Methods(http.MethodPost)
	r.HandleFunc("/categories", productHandler.Categories).Methods(http.MethodGet)
	r.HandleFunc("/vendors", vendorHandler.List).Methods(http.MethodGet)

	r.HandleFunc("/cart", cartHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", cartHandler.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", cartHandler.UpdateItem).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id}", cartHandler.RemoveItem).Methods(http.MethodDelete)
	r.HandleFunc("/cart", cartHandler.Clear).Methods(http.MethodDelete)
	r.HandleFunc("/coupons/validate", couponHandler.Validate).Methods(http.MethodPost)

	auth := middlewares.RequireAuth(sess)

	wishlist := r.PathPrefix("/wishlist").Subrouter()
	wishlist.Use(auth)
	wishlist.HandleFunc("", wishlistHandler.Get).Methods(http.MethodGet)
	wishlist.HandleFunc("/items", wishlistHandler.AddItem).Methods(http.MethodPost)
	wishlist.HandleFunc("/items/{id}", wishlistHandler.RemoveItem).Methods(http.MethodDelete)

	checkout := r.PathPrefix("/checkout").Subrouter()
	checkout.Use(auth)
	checkout.HandleFunc("", checkoutHandler.Initiate).Methods(http.MethodGet)
	checkout.HandleFunc("", checkoutHandler.Create).Methods(http.MethodPost)
	checkout.HandleFunc("/success", checkoutHandler.Success).Methods(http.MethodGet)
	checkout.HandleFunc("/cancel", checkoutHandler.Cancel).Methods(http.MethodGet)

	orders := r.PathPrefix("/orders").Subrouter()
	orders.Use(auth)
	orders.HandleFunc("", orderHandler.List).Methods(http.MethodGet)
	orders.HandleFunc("/{number}", orderHandler.Detail).Methods(http.MethodGet)
	orders.HandleFunc("/{number}/ship", orderHandler.Ship).Methods(http.MethodPost)
	orders.HandleFunc("/{number}/deliver", orderHandler.Deliver).Methods(http.MethodPost)

	addresses := r.PathPrefix("/addresses").Subrouter()
	addresses.Use(auth)
	addresses.HandleFunc("", addressHandler.List).Methods(http.MethodGet)
	addresses.HandleFunc("", addressHandler.Create).Methods(http.MethodPost)
	addresses.HandleFunc("/{id}", addressHandler.Update).Methods(http.MethodPut)
	addresses.HandleFunc("/{id}", addressHandler.Delete).Methods(http.MethodDelete)

	return root
}
