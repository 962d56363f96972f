package handler

import (
	"skills-audit/internal/aggregate"
	"skills-audit/internal/delivery/http/dto"
	"skills-audit/internal/domain/employee"
	"skills-audit/internal/pkg/response"
	"skills-audit/internal/workflow"

	"github.com/gofiber/fiber/v3"
)

type EmployeeHandler struct {
	svc    *workflow.EmployeeService
	engine *aggregate.Engine
}

func NewEmployeeHandler(svc *workflow.EmployeeService, engine *aggregate.Engine) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, engine: engine}
}

func (h *EmployeeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/employees")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	grp.Get("/:id/records", h.Records)
}

// List returns every employee; active=true narrows to active records.
func (h *EmployeeHandler) List(c fiber.Ctx) error {
	var (
		items []employee.Employee
		err   error
	)
	if c.Query("active") == "true" {
		items, err = h.svc.ListActive(c.Context())
	} else {
		items, err = h.svc.List(c.Context())
	}
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *EmployeeHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	e, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, e)
}

func (h *EmployeeHandler) Create(c fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	e, err := h.svc.Create(c.Context(), workflow.CreateEmployeeInput{
		ExternalID: req.ExternalID,
		Name:       req.Name,
		Email:      req.Email,
		CellNumber: req.CellNumber,
		Profession: req.Profession,
		Role:       employee.Role(req.Role),
	})
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, e)
}

func (h *EmployeeHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	e, err := h.svc.Update(c.Context(), id, workflow.UpdateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		CellNumber: req.CellNumber,
		Profession: req.Profession,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, e)
}

func (h *EmployeeHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// Records returns the employee joined with all of its sub-records.
func (h *EmployeeHandler) Records(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	bundle, err := h.engine.EmployeeRecords(c.Context(), id)
	if err != nil {
		return mapWorkflowError(workflow.MapStoreErr(err))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, bundle)
}
