package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/token-gate/internal/api/http/handlers"
	"github.com/spec-kit/token-gate/internal/auth"
	"github.com/spec-kit/token-gate/internal/domain"
)

// AdminGrant is required by the admin routes.
const AdminGrant = auth.RolePrefix + "ADMIN"

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware[domain.UserIdentity]
}

// RegisterRoutes wires HTTP routes. The bearer middleware runs on every
// route; only the guards decide whether anonymous callers may pass.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.Token)

	api := app.Group("", cfg.AuthMiddleware.Handle)
	api.Get("/me", auth.RequireAuthenticated(), cfg.Auth.Me)
	api.Get("/admin/ping", auth.RequireGrant(AdminGrant), cfg.Auth.AdminPing)
}
