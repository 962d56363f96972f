package handler

import (
	"skills-audit/internal/aggregate"
	"skills-audit/internal/pkg/response"
	"skills-audit/internal/workflow"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	engine *aggregate.Engine
}

func NewDashboardHandler(engine *aggregate.Engine) *DashboardHandler {
	return &DashboardHandler{engine: engine}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/dashboard", h.Summary)
}

func (h *DashboardHandler) Summary(c fiber.Ctx) error {
	summary, err := h.engine.Dashboard(c.Context())
	if err != nil {
		return mapWorkflowError(workflow.MapStoreErr(err))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, summary)
}
