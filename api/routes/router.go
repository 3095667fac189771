package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/rocketshoes-cart/api/controllers"
	cartcontrollers "github.com/angelmondragon/rocketshoes-cart/api/controllers/cart"
	"github.com/angelmondragon/rocketshoes-cart/api/middleware"
	"github.com/angelmondragon/rocketshoes-cart/internal/notifications"
	"github.com/angelmondragon/rocketshoes-cart/pkg/config"
	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
)

type notificationFeed interface {
	Drain() []notifications.Notification
}

// Dependencies groups everything the router hands to controllers.
type Dependencies struct {
	Cart          cartcontrollers.Service
	Notifications notificationFeed
	Readiness     map[string]controllers.Pinger
	HTTPMetrics   *middleware.HTTPMetrics
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Recoverer(logg),
		deps.HTTPMetrics.Handler,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Readiness))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(deps.Cart, logg))
			r.Post("/items", cartcontrollers.CartAddItem(deps.Cart, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(deps.Cart, logg))
			r.Patch("/items/{productId}", cartcontrollers.CartUpdateItem(deps.Cart, logg))
		})
		r.Get("/notifications", controllers.NotificationsDrain(deps.Notifications, logg))
	})

	return r
}
