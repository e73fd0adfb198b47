package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/auth"
	"github.com/rahayucraft/studio-management/internal/blog"
	"github.com/rahayucraft/studio-management/internal/catalog"
	"github.com/rahayucraft/studio-management/internal/employees"
	"github.com/rahayucraft/studio-management/internal/notifications"
	"github.com/rahayucraft/studio-management/internal/orders"
	"github.com/rahayucraft/studio-management/internal/quotes"
	"github.com/rahayucraft/studio-management/internal/returns"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/store"
	"github.com/rahayucraft/studio-management/internal/transport/middleware"
	"github.com/rahayucraft/studio-management/internal/users"
	"github.com/rahayucraft/studio-management/internal/workshops"
)

// Handlers bundles every mounted handler so wiring stays in one place.
type Handlers struct {
	Auth          *auth.Handler
	Users         *users.Handler
	Employees     *employees.Handler
	Catalog       *catalog.Handler
	Workshops     *workshops.Handler
	Orders        *orders.Handler
	Quotes        *quotes.Handler
	Returns       *returns.Handler
	Blog          *blog.Handler
	Notifications *notifications.Handler
}

// RegisterAllRoutes mounts the dashboard API under /api/v1. Reads are
// open to any authenticated user; mutations are gated per capability so
// a role-permission cascade takes effect on the next request.
func RegisterAllRoutes(router *chi.Mux, cfg *internal.Config, st *store.Store, repo storage.Repository, authService *auth.Service, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(repo)

	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	if cfg.Observability.Metrics.Enabled {
		router.Handle(cfg.Observability.Metrics.Path, promhttp.Handler())
	}

	requireCap := func(capability string) func(http.Handler) http.Handler {
		return middleware.RequireCapability(st, capability, logger)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(middleware.Authenticator(authService, logger))

			pr.Post("/auth/logout", h.Auth.Logout)
			pr.Get("/auth/me", h.Auth.Me)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/", h.Users.ListUsers)
				ur.Get("/{id}", h.Users.GetUser)

				ur.Group(func(mr chi.Router) {
					mr.Use(requireCap("users"))
					mr.Post("/", h.Users.CreateUser)
					mr.Put("/{id}", h.Users.UpdateUser)
					mr.Delete("/{id}", h.Users.DeleteUser)
					mr.Post("/{id}/promote", h.Users.PromoteUser)
				})
			})

			pr.Route("/role-permissions", func(rr chi.Router) {
				rr.Get("/", h.Users.GetRolePermissions)
				rr.Group(func(mr chi.Router) {
					// Rewriting the mapping itself is admin-only.
					mr.Use(middleware.RequireRole())
					mr.Put("/{role}", h.Users.UpdateRolePermissions)
				})
			})

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employees.ListEmployees)
				er.Get("/{id}", h.Employees.GetEmployee)

				er.Group(func(mr chi.Router) {
					mr.Use(requireCap("employees"))
					mr.Post("/", h.Employees.CreateEmployee)
					mr.Put("/{id}", h.Employees.UpdateEmployee)
					mr.Delete("/{id}", h.Employees.DeleteEmployee)
				})
			})

			pr.Route("/products", func(cr chi.Router) {
				cr.Get("/", h.Catalog.ListProducts)
				cr.Get("/{id}", h.Catalog.GetProduct)

				cr.Group(func(mr chi.Router) {
					mr.Use(requireCap("inventory"))
					mr.Post("/", h.Catalog.CreateProduct)
					mr.Put("/{id}", h.Catalog.UpdateProduct)
					mr.Delete("/{id}", h.Catalog.DeleteProduct)
				})
			})

			pr.Route("/suppliers", func(cr chi.Router) {
				cr.Get("/", h.Catalog.ListSuppliers)

				cr.Group(func(mr chi.Router) {
					mr.Use(requireCap("inventory"))
					mr.Post("/", h.Catalog.CreateSupplier)
					mr.Put("/{id}", h.Catalog.UpdateSupplier)
					mr.Delete("/{id}", h.Catalog.DeleteSupplier)
				})
			})

			pr.Route("/workshops", func(wr chi.Router) {
				wr.Get("/", h.Workshops.ListWorkshops)
				wr.Get("/{id}", h.Workshops.GetWorkshop)
				// Any authenticated user can enroll; capacity is the gate.
				wr.Post("/{id}/enroll", h.Workshops.Enroll)

				wr.Group(func(mr chi.Router) {
					mr.Use(requireCap("workshops"))
					mr.Post("/", h.Workshops.CreateWorkshop)
					mr.Put("/{id}", h.Workshops.UpdateWorkshop)
					mr.Delete("/{id}", h.Workshops.DeleteWorkshop)
					mr.Post("/{id}/complete", h.Workshops.Complete)
				})
			})

			pr.Route("/orders", func(or chi.Router) {
				or.Get("/", h.Orders.ListOrders)
				or.Get("/{id}", h.Orders.GetOrder)

				or.Group(func(mr chi.Router) {
					mr.Use(requireCap("orders"))
					mr.Post("/", h.Orders.CreateOrder)
					mr.Put("/{id}", h.Orders.UpdateOrder)
					mr.Delete("/{id}", h.Orders.DeleteOrder)
				})
			})

			pr.Route("/quotes", func(qr chi.Router) {
				qr.Get("/", h.Quotes.ListQuotes)
				qr.Get("/{id}", h.Quotes.GetQuote)

				qr.Group(func(mr chi.Router) {
					mr.Use(requireCap("quotes"))
					mr.Post("/", h.Quotes.CreateQuote)
					mr.Put("/{id}", h.Quotes.UpdateQuote)
					mr.Delete("/{id}", h.Quotes.DeleteQuote)
				})
			})

			pr.Route("/returns", func(rr chi.Router) {
				rr.Get("/", h.Returns.ListReturns)
				rr.Get("/{id}", h.Returns.GetReturn)
				rr.Post("/", h.Returns.CreateReturn)

				rr.Group(func(mr chi.Router) {
					mr.Use(requireCap("returns"))
					mr.Put("/{id}", h.Returns.UpdateReturn)
					mr.Delete("/{id}", h.Returns.DeleteReturn)
					mr.Post("/{id}/respond", h.Returns.Respond)
					mr.Post("/{id}/refund", h.Returns.Refund)
				})
			})

			pr.Route("/blog", func(br chi.Router) {
				br.Get("/", h.Blog.ListPosts)
				br.Get("/{id}", h.Blog.GetPost)

				br.Group(func(mr chi.Router) {
					mr.Use(requireCap("blog"))
					mr.Post("/", h.Blog.CreatePost)
					mr.Put("/{id}", h.Blog.UpdatePost)
					mr.Delete("/{id}", h.Blog.DeletePost)
				})
			})

			pr.Route("/notifications", func(nr chi.Router) {
				nr.Get("/", h.Notifications.ListNotifications)
				nr.Post("/", h.Notifications.AddNotification)
				nr.Patch("/{id}/read", h.Notifications.MarkRead)
				nr.Delete("/", h.Notifications.ClearNotifications)
			})

			pr.Get("/activity", h.Notifications.ListActivity)
		})
	})
}
