package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/userstore/internal/api/http/handlers"
	"github.com/spec-kit/userstore/internal/auth"
	"github.com/spec-kit/userstore/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	users := app.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Get("/:email", cfg.Users.Get)

	users.Post("/", cfg.AuthMiddleware.Handle, cfg.Users.Create)
	users.Delete("/:email", cfg.AuthMiddleware.Handle, cfg.Users.Delete)
}
