package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/api/http/handlers"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Accounts       *handlers.AccountsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Stock lookups are public, claims need a
// token, and every admin operation sits behind the role guard before any
// handler reads state.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	app.Get("/stock", cfg.Accounts.Stock)
	app.Get("/stock/:category", cfg.Accounts.CategoryStock)

	app.Post("/claim", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Accounts.Claim)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Post("/tokens/user", cfg.Auth.MintUserToken)
	admin.Post("/restock/:category/:service", cfg.Admin.Restock)
	admin.Post("/access", cfg.Admin.Grant)
	admin.Put("/cooldowns/:category", cfg.Admin.SetCooldown)
	admin.Delete("/stock/:category", cfg.Admin.ClearStock)
	admin.Get("/audit", cfg.Admin.ListAudit)
}
