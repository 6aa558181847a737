package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arjunpatwa/qrmenu-backend/api/controllers"
	"github.com/arjunpatwa/qrmenu-backend/api/middleware"
	"github.com/arjunpatwa/qrmenu-backend/internal/auth"
	"github.com/arjunpatwa/qrmenu-backend/internal/cart"
	"github.com/arjunpatwa/qrmenu-backend/internal/dishes"
	"github.com/arjunpatwa/qrmenu-backend/internal/menu"
	"github.com/arjunpatwa/qrmenu-backend/internal/restaurants"
	"github.com/arjunpatwa/qrmenu-backend/internal/taxonomy"
	"github.com/arjunpatwa/qrmenu-backend/pkg/config"
	"github.com/arjunpatwa/qrmenu-backend/pkg/db"
	"github.com/arjunpatwa/qrmenu-backend/pkg/enums"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
	"github.com/arjunpatwa/qrmenu-backend/pkg/metrics"
	"github.com/arjunpatwa/qrmenu-backend/pkg/redis"
)

// Services groups everything the router mounts.
type Services struct {
	Auth        auth.Service
	Menu        menu.Service
	Cart        cart.Service
	Dishes      dishes.Service
	Taxonomy    taxonomy.Service
	Restaurants restaurants.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(registry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
	})

	// Diner surface, keyed by an anonymous cookie session rather than a login.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CartSession(cfg.Cart, logg))

		r.Route("/api/v1/menu/{slug}", func(r chi.Router) {
			r.Get("/", controllers.PublicMenu(svcs.Menu, logg))
			r.Get("/dishes/{dishId}", controllers.PublicDish(svcs.Menu, logg))
		})

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			r.Get("/summary", controllers.CartSummary(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateItem(svcs.Cart, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(svcs.Cart, logg))
		})
	})

	r.Route("/api/v1/owner", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleOwner), logg))
		r.Use(middleware.RequireRestaurantScope(logg))

		r.Get("/ping", controllers.OwnerPing())

		r.Route("/restaurant", func(r chi.Router) {
			r.Get("/", controllers.OwnerProfile(svcs.Restaurants, logg))
			r.Put("/", controllers.OwnerUpdateProfile(svcs.Restaurants, logg))
		})

		r.Route("/dishes", func(r chi.Router) {
			r.Get("/", controllers.OwnerListDishes(svcs.Dishes, logg))
			r.Post("/", controllers.OwnerCreateDish(svcs.Dishes, logg))
			r.Get("/{dishId}", controllers.OwnerGetDish(svcs.Dishes, logg))
			r.Patch("/{dishId}", controllers.OwnerUpdateDish(svcs.Dishes, logg))
			r.Delete("/{dishId}", controllers.OwnerDeleteDish(svcs.Dishes, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.OwnerListCategories(svcs.Taxonomy, logg))
			r.Post("/", controllers.OwnerCreateCategory(svcs.Taxonomy, logg))
			r.Delete("/{categoryId}", controllers.OwnerDeleteCategory(svcs.Taxonomy, logg))
			r.Post("/{categoryId}/subcategories", controllers.OwnerCreateSubcategory(svcs.Taxonomy, logg))
			r.Delete("/{categoryId}/subcategories/{subcategoryId}", controllers.OwnerDeleteSubcategory(svcs.Taxonomy, logg))
		})

		r.Route("/tastes", func(r chi.Router) {
			r.Get("/", controllers.OwnerListTastes(svcs.Taxonomy, logg))
			r.Post("/", controllers.OwnerCreateTaste(svcs.Taxonomy, logg))
			r.Delete("/{tasteId}", controllers.OwnerDeleteTaste(svcs.Taxonomy, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleSuperAdmin), logg))

		r.Get("/ping", controllers.AdminPing())

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", controllers.AdminListRestaurants(svcs.Restaurants, logg))
			r.Post("/", controllers.AdminOnboardRestaurant(svcs.Restaurants, logg))
			r.Get("/{restaurantId}", controllers.AdminGetRestaurant(svcs.Restaurants, logg))
			r.Put("/{restaurantId}", controllers.AdminUpdateRestaurant(svcs.Restaurants, logg))
			r.Patch("/{restaurantId}/billing", controllers.AdminSetBillingStatus(svcs.Restaurants, logg))
			r.Post("/{restaurantId}/impersonate", controllers.AdminImpersonateRestaurant(svcs.Restaurants, logg))
		})
	})

	return r
}
