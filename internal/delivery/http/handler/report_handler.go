package handler

import (
	"skills-audit/internal/pkg/response"
	"skills-audit/internal/report"
	"skills-audit/internal/workflow"

	"github.com/gofiber/fiber/v3"
)

// ReportHandler exposes the assembler's structured data for external
// renderers. Byte-level rendering happens outside this service.
type ReportHandler struct {
	assembler *report.Assembler
	employees *workflow.EmployeeService
}

func NewReportHandler(assembler *report.Assembler, employees *workflow.EmployeeService) *ReportHandler {
	return &ReportHandler{assembler: assembler, employees: employees}
}

func (h *ReportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/reports")
	grp.Get("/employees", h.EmployeeList)
	grp.Get("/employees/:id", h.EmployeeBundle)
	grp.Get("/summary", h.Summary)
	grp.Get("/training-progress", h.TrainingProgress)
}

func (h *ReportHandler) EmployeeList(c fiber.Ctx) error {
	employees, err := h.employees.List(c.Context())
	if err != nil {
		return mapWorkflowError(err)
	}
	rows := h.assembler.EmployeeList(c.Context(), employees)
	return response.Success(c, fiber.StatusOK, response.MessageOK, rows)
}

func (h *ReportHandler) EmployeeBundle(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	bundle, err := h.assembler.EmployeeBundle(c.Context(), id)
	if err != nil {
		return mapWorkflowError(workflow.MapStoreErr(err))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, bundle)
}

func (h *ReportHandler) Summary(c fiber.Ctx) error {
	tables, err := h.assembler.Summary(c.Context())
	if err != nil {
		return mapWorkflowError(workflow.MapStoreErr(err))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, tables)
}

func (h *ReportHandler) TrainingProgress(c fiber.Ctx) error {
	rows, err := h.assembler.TrainingProgress(c.Context())
	if err != nil {
		return mapWorkflowError(workflow.MapStoreErr(err))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rows)
}
