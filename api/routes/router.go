package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sweetslice/storefront/api/controllers"
	"github.com/sweetslice/storefront/api/middleware"
	"github.com/sweetslice/storefront/internal/cart"
	"github.com/sweetslice/storefront/internal/catalog"
	"github.com/sweetslice/storefront/internal/checkout"
	"github.com/sweetslice/storefront/internal/inquiries"
	"github.com/sweetslice/storefront/internal/orders"
	"github.com/sweetslice/storefront/pkg/config"
	"github.com/sweetslice/storefront/pkg/logger"
	"github.com/sweetslice/storefront/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	catalogService catalog.Service,
	cartService cart.Service,
	cartEvents controllers.CartSubscriber,
	checkoutService checkout.Service,
	ordersService orders.Service,
	inquiriesService inquiries.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsBrowse(catalogService, logg))
			r.Get("/featured", controllers.ProductsFeatured(catalogService, logg))
			r.Get("/search", controllers.ProductsSearch(catalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
				r.Get("/events", controllers.CartEvents(cartService, cartEvents, controllers.DefaultHeartbeat, logg))
				r.Post("/items", controllers.CartAddItem(cartService, logg))
				r.Patch("/items/{lineId}", controllers.CartUpdateItem(cartService, logg))
				r.Delete("/items/{lineId}", controllers.CartRemoveItem(cartService, logg))
				r.Delete("/products/{productId}", controllers.CartRemoveProduct(cartService, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/validate", controllers.CheckoutValidate(checkoutService, logg))
				r.Post("/quote", controllers.CheckoutQuote(checkoutService, logg))
				r.Post("/orders", controllers.CheckoutPlaceOrder(checkoutService, logg))
			})
		})

		r.Get("/orders/{orderCode}", controllers.OrderByCode(ordersService, logg))

		r.Route("/inquiries", func(r chi.Router) {
			r.Get("/options", controllers.InquiryOptions())
			r.Post("/contact", controllers.InquiryContact(inquiriesService, logg))
			r.Post("/custom-orders", controllers.InquiryCustomOrder(inquiriesService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminToken(cfg.Admin.Token, logg))
		r.Post("/products", controllers.AdminCreateProduct(catalogService, logg))
		r.Patch("/products/{productId}", controllers.AdminUpdateProduct(catalogService, logg))
		r.Delete("/products/{productId}", controllers.AdminDeleteProduct(catalogService, logg))
		r.Get("/orders", controllers.AdminListOrders(ordersService, logg))
		r.Get("/inquiries", controllers.AdminListInquiries(inquiriesService, logg))
	})

	return r
}
