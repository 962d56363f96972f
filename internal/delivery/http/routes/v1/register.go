package v1

import (
	"skills-audit/internal/delivery/http/handler"
	"skills-audit/internal/delivery/http/middleware"
	"skills-audit/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health        *handler.HealthHandler
	Employee      *handler.EmployeeHandler
	Qualification *handler.QualificationHandler
	Training      *handler.TrainingHandler
	Skill         *handler.SkillHandler
	Dashboard     *handler.DashboardHandler
	Report        *handler.ReportHandler
	Events        *ws.Handler
	Auth          *middleware.AuthMiddleware
}

// Register mounts everything under /api/v1. All routes require a valid
// bearer token; the dashboard, reports and the event stream are admin
// only.
func Register(r fiber.Router, h Handlers) {
	if r == nil || h.Auth == nil {
		return
	}

	protected := r.Group("", h.Auth.Middleware())

	if h.Employee != nil {
		h.Employee.RegisterRoutes(protected)
	}
	if h.Qualification != nil {
		h.Qualification.RegisterRoutes(protected)
	}
	if h.Training != nil {
		h.Training.RegisterRoutes(protected)
	}
	if h.Skill != nil {
		h.Skill.RegisterRoutes(protected)
	}

	admin := protected.Group("", h.Auth.RequireAdmin())
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(admin)
	}
	if h.Report != nil {
		h.Report.RegisterRoutes(admin)
	}
	if h.Events != nil {
		admin.Get("/events", h.Events.HandleEvents)
	}
}
