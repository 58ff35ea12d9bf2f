package http

import (
	"net/http"

	_ "github.com/DRSN-tech/pizzeria-backend/docs" // Регистрация описания API
	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Metrics — метрики, которые отдаёт и пополняет HTTP-слой.
type Metrics interface {
	RequestObserver
	Handler() http.Handler
}

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Init регистрирует маршруты. metrics может быть nil.
func (r *Router) Init(
	prUC usecase.ProductUC,
	cartUC usecase.CartUC,
	availabilityUC usecase.AvailabilityUC,
	orderUC usecase.OrderUC,
	metrics Metrics,
	adminToken string,
) {
	r.router.Use(middleware.Recoverer)
	if metrics != nil {
		r.router.Use(observeRequests(metrics))
		r.router.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerProductRoutes(v1, NewProductHandler(prUC, r.logger))
		registerCartRoutes(v1, NewCartHandler(cartUC, orderUC, r.logger))
		registerAvailabilityRoutes(v1, NewAvailabilityHandler(availabilityUC, r.logger), adminToken)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Get("/products", prHandler.listCatalog)
}

func registerCartRoutes(router chi.Router, cartHandler *CartHandler) {
	router.Route("/carts/{sessionID}", func(cr chi.Router) {
		cr.Get("/", cartHandler.getCart)
		cr.Delete("/", cartHandler.clearCart)
		cr.Post("/items", cartHandler.addItem)
		cr.Patch("/items/{lineID}", cartHandler.setQuantity)
		cr.Delete("/items/{lineID}", cartHandler.removeItem)
		cr.Post("/orders", cartHandler.submitOrder)
	})
}

func registerAvailabilityRoutes(router chi.Router, avHandler *AvailabilityHandler, adminToken string) {
	router.Get("/availability", avHandler.getAvailability)

	router.Route("/admin", func(ar chi.Router) {
		ar.Use(requireAdminToken(adminToken, avHandler.logger))
		ar.Get("/settings", avHandler.getSettings)
		ar.Put("/settings", avHandler.updateSettings)
	})
}
