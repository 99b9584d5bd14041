package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/academia-hq/backend/app"
	"github.com/academia-hq/backend/auth"
	"github.com/academia-hq/backend/handlers"
	"github.com/academia-hq/backend/middleware"
	"github.com/academia-hq/backend/repositories"
)

// Named route policies. Every protected route group attaches exactly one of
// these; there are no inline role checks anywhere else.
var (
	// staffReadPolicy admits any staff role, scoped to the effective academy.
	staffReadPolicy = middleware.AuthorizationPolicy{
		Roles:  []auth.Role{auth.RoleOrgAdmin, auth.RoleStaff, auth.RoleSuperAdmin},
		Tenant: middleware.TenantScoped,
	}

	// adminWritePolicy admits administrators only, scoped to the effective
	// academy. Regular staff can read catalogs and news but not change them.
	adminWritePolicy = middleware.AuthorizationPolicy{
		Roles:  []auth.Role{auth.RoleOrgAdmin, auth.RoleSuperAdmin},
		Tenant: middleware.TenantScoped,
	}
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.AcademyHeader},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)

		// Tenant-owned lookup tables
		catalogRoutes := func(table repositories.OwnedTable) func(chi.Router) {
			return func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(deps.AuthMiddleware.RequirePolicy(staffReadPolicy))
					r.Get("/", handlers.ListCatalogHandler(deps, table))
					r.Get("/{id}", handlers.GetCatalogItemHandler(deps, table))
				})
				r.Group(func(r chi.Router) {
					r.Use(deps.AuthMiddleware.RequirePolicy(adminWritePolicy))
					r.Post("/", handlers.CreateCatalogItemHandler(deps, table))
					r.Put("/{id}", handlers.UpdateCatalogItemHandler(deps, table))
					r.Delete("/{id}", handlers.DeleteCatalogItemHandler(deps, table))
				})
			}
		}
		r.Route("/positions", catalogRoutes(repositories.TablePositions))
		r.Route("/categories", catalogRoutes(repositories.TableCategories))
		r.Route("/branches", catalogRoutes(repositories.TableBranches))

		// Players
		r.Route("/players", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequirePolicy(staffReadPolicy))
			r.Get("/", handlers.ListPlayersHandler(deps))
			r.Post("/", handlers.CreatePlayerHandler(deps))
			r.Get("/{id}", handlers.GetPlayerHandler(deps))
			r.Put("/{id}", handlers.UpdatePlayerHandler(deps))
			r.Delete("/{id}", handlers.DeletePlayerHandler(deps))
		})

		// News
		r.Route("/news", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequirePolicy(staffReadPolicy))
				r.Get("/", handlers.ListNewsHandler(deps))
				r.Get("/{id}", handlers.GetNewsHandler(deps))
			})
			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequirePolicy(adminWritePolicy))
				r.Post("/", handlers.CreateNewsHandler(deps))
				r.Put("/{id}", handlers.UpdateNewsHandler(deps))
				r.Delete("/{id}", handlers.DeleteNewsHandler(deps))
			})
		})

		// Guardian portal (self-ownership, no academy scope)
		r.Route("/portal", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireGuardian)
			r.Get("/players", handlers.PortalPlayersHandler(deps))
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"message":"endpoint not found"}`))
	})

	return r
}
