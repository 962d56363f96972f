package routes

import (
	v1 "skills-audit/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

// Handlers aggregates everything the router mounts. The container
// builds it once at startup.
type Handlers = v1.Handlers

func Register(app *fiber.App, h Handlers) {
	if app == nil {
		return
	}

	if h.Health != nil {
		h.Health.RegisterRoutes(app)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), h)
}
