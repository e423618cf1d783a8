package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PollinateIQ/dineup-backend/api/controllers"
	"github.com/PollinateIQ/dineup-backend/api/middleware"
	authsvc "github.com/PollinateIQ/dineup-backend/internal/auth"
	cartsvc "github.com/PollinateIQ/dineup-backend/internal/cart"
	catalogsvc "github.com/PollinateIQ/dineup-backend/internal/catalog"
	ordersvc "github.com/PollinateIQ/dineup-backend/internal/orders"
	paymentsvc "github.com/PollinateIQ/dineup-backend/internal/payments"
	restaurantsvc "github.com/PollinateIQ/dineup-backend/internal/restaurants"
	usersvc "github.com/PollinateIQ/dineup-backend/internal/users"
	"github.com/PollinateIQ/dineup-backend/pkg/auth/session"
	"github.com/PollinateIQ/dineup-backend/pkg/config"
	"github.com/PollinateIQ/dineup-backend/pkg/db"
	"github.com/PollinateIQ/dineup-backend/pkg/enums"
	"github.com/PollinateIQ/dineup-backend/pkg/logger"
	"github.com/PollinateIQ/dineup-backend/pkg/metrics"
	redisclient "github.com/PollinateIQ/dineup-backend/pkg/redis"
)

// Deps bundles everything the router wires together. cmd/api builds one of
// these after the services come up.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redisclient.Client
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry

	Auth        authsvc.Service
	Users       usersvc.Service
	Restaurants restaurantsvc.Service
	Catalog     catalogsvc.Service
	Cart        cartsvc.Service
	Orders      ordersvc.Service
	Payments    paymentsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		chimw.StripSlashes,
	)

	if deps.Registry != nil {
		r.Use(middleware.Metrics(metrics.NewHTTPMetrics(deps.Registry)))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		var cache interface{ Ping(context.Context) error }
		if deps.Redis != nil {
			cache = deps.Redis
		}
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cache, logg))
	})

	// Auth endpoints and the profile live under /api; resource routes are
	// served at the root, matching the public URL surface.
	r.Route("/api", func(r chi.Router) {
		r.Post("/token", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/token/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/register", controllers.AuthRegister(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Route("/user-profile", func(r chi.Router) {
				r.Get("/", controllers.ProfileGet(deps.Users, logg))
				r.Put("/", controllers.ProfileUpdate(deps.Users, logg))
				r.Patch("/", controllers.ProfileUpdate(deps.Users, logg))
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRestaurant(logg))

			r.Get("/menu-items", controllers.MenuItemsList(deps.Catalog, logg))
			r.Get("/categories", controllers.CategoriesList(deps.Catalog, logg))
			r.Get("/tables", controllers.TablesList(deps.Catalog, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(deps.Cart, logg))
				r.Post("/", controllers.CartSetItems(deps.Cart, logg))
				r.Delete("/clear", controllers.CartClear(deps.Cart, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, logg))
			r.Post("/", controllers.OrdersCheckout(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrdersGet(deps.Orders, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.PaymentsList(deps.Payments, logg))
			r.Post("/", controllers.PaymentsRecord(deps.Payments, logg))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleStaff, logg))

			r.Get("/orders", controllers.StaffOrdersList(deps.Orders, logg))
			r.Patch("/orders/{orderId}", controllers.StaffOrderUpdateStatus(deps.Orders, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))

			r.Route("/restaurants", func(r chi.Router) {
				r.Get("/", controllers.AdminRestaurantsList(deps.Restaurants, logg))
				r.Post("/", controllers.AdminRestaurantCreate(deps.Restaurants, logg))
				r.Get("/{restaurantId}", controllers.AdminRestaurantGet(deps.Restaurants, logg))
				r.Put("/{restaurantId}", controllers.AdminRestaurantUpdate(deps.Restaurants, logg))
				r.Patch("/{restaurantId}", controllers.AdminRestaurantUpdate(deps.Restaurants, logg))
				r.Delete("/{restaurantId}", controllers.AdminRestaurantDelete(deps.Restaurants, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.AdminUsersList(deps.Users, logg))
				r.Post("/", controllers.AdminUserCreate(deps.Users, logg))
				r.Get("/{userId}", controllers.AdminUserGet(deps.Users, logg))
				r.Put("/{userId}", controllers.AdminUserUpdate(deps.Users, logg))
				r.Patch("/{userId}", controllers.AdminUserUpdate(deps.Users, logg))
				r.Delete("/{userId}", controllers.AdminUserDelete(deps.Users, logg))
			})

			r.Route("/menu-items", func(r chi.Router) {
				r.Get("/", controllers.AdminMenuItemsList(deps.Catalog, logg))
				r.Post("/", controllers.AdminMenuItemCreate(deps.Catalog, logg))
				r.Put("/{itemId}", controllers.AdminMenuItemUpdate(deps.Catalog, logg))
				r.Patch("/{itemId}", controllers.AdminMenuItemUpdate(deps.Catalog, logg))
				r.Delete("/{itemId}", controllers.AdminMenuItemDelete(deps.Catalog, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminCategoriesList(deps.Catalog, logg))
				r.Post("/", controllers.AdminCategoryCreate(deps.Catalog, logg))
				r.Delete("/{categoryId}", controllers.AdminCategoryDelete(deps.Catalog, logg))
			})

			r.Route("/tables", func(r chi.Router) {
				r.Get("/", controllers.AdminTablesList(deps.Catalog, logg))
				r.Post("/", controllers.AdminTableCreate(deps.Catalog, logg))
				r.Delete("/{tableId}", controllers.AdminTableDelete(deps.Catalog, logg))
			})
		})
	})

	return r
}
