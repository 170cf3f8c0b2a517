package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omarberrios/shopgrid-backend/api/controllers"
	"github.com/omarberrios/shopgrid-backend/api/middleware"
	"github.com/omarberrios/shopgrid-backend/internal/cart"
	checkoutsvc "github.com/omarberrios/shopgrid-backend/internal/checkout"
	"github.com/omarberrios/shopgrid-backend/internal/discounts"
	"github.com/omarberrios/shopgrid-backend/internal/orders"
	products "github.com/omarberrios/shopgrid-backend/internal/products"
	"github.com/omarberrios/shopgrid-backend/internal/stores"
	"github.com/omarberrios/shopgrid-backend/pkg/config"
	"github.com/omarberrios/shopgrid-backend/pkg/db"
	"github.com/omarberrios/shopgrid-backend/pkg/logger"
	"github.com/omarberrios/shopgrid-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	metricsHandler http.Handler,
	storeService stores.Service,
	productService products.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	discountService discounts.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	ready := controllers.HealthReady(cfg, dbP, nil)
	var idempotency func(http.Handler) http.Handler
	var rateLimit func(http.Handler) http.Handler
	if redisClient != nil {
		ready = controllers.HealthReady(cfg, dbP, redisClient)
		idempotency = middleware.Idempotency(redisClient, logg)
		rateLimit = middleware.RateLimit(redisClient, logg)
	} else {
		idempotency = middleware.Idempotency(nil, logg)
		rateLimit = middleware.RateLimit(nil, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", ready)
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.StoreHeader())
		r.Use(rateLimit)
		r.Use(idempotency)

		// Storefront reads and tenant registration need no store identity.
		r.Post("/stores", controllers.StoreCreate(storeService, logg))
		r.Get("/stores", controllers.StoreList(storeService, logg))
		r.Get("/stores/{storeID}", controllers.StoreGet(storeService, logg))

		r.Get("/products", controllers.ProductList(productService, logg))
		r.Get("/products/{productID}", controllers.ProductGet(productService, logg))

		r.Post("/discounts", controllers.DiscountCreate(discountService, logg))
		r.Get("/discounts", controllers.DiscountList(discountService, logg))
		r.Get("/discounts/{code}", controllers.DiscountGet(discountService, logg))
		r.Patch("/discounts/{discountID}/active", controllers.DiscountSetActive(discountService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.StoreContext(logg))

			r.Get("/ping", controllers.PrivatePing())

			r.Route("/stores/me", func(r chi.Router) {
				r.Get("/", controllers.StoreProfile(storeService, logg))
				r.Patch("/", controllers.StoreUpdate(storeService, logg))
				r.Delete("/", controllers.StoreDeactivate(storeService, logg))
			})

			r.Get("/products/mine", controllers.MyProductList(productService, logg))
			r.Post("/products", controllers.ProductCreate(productService, logg))
			r.Patch("/products/{productID}", controllers.ProductUpdate(productService, logg))
			r.Delete("/products/{productID}", controllers.ProductDeactivate(productService, logg))

			r.Route("/product-types", func(r chi.Router) {
				r.Get("/", controllers.ProductTypeList(productService, logg))
				r.Post("/", controllers.ProductTypeCreate(productService, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(cartService, logg))
				r.Post("/items", controllers.CartAddItem(cartService, logg))
				r.Patch("/items/{itemID}", controllers.CartUpdateItem(cartService, logg))
				r.Delete("/items/{itemID}", controllers.CartRemoveItem(cartService, logg))
			})

			r.Post("/checkout/quote", controllers.CheckoutQuote(checkoutService, logg))
			r.Post("/checkout", controllers.CheckoutCommit(checkoutService, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/purchases", controllers.OrderPurchases(ordersService, logg))
				r.Get("/sales", controllers.OrderSales(ordersService, logg))
				r.Get("/{orderID}", controllers.OrderGet(ordersService, logg))
				r.Patch("/{orderID}/status", controllers.OrderStatusUpdate(ordersService, logg))
			})
			r.Get("/checkout-groups/{groupID}", controllers.CheckoutGroupGet(ordersService, logg))
		})
	})

	return r
}
