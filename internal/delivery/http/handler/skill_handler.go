package handler

import (
	"skills-audit/internal/delivery/http/dto"
	"skills-audit/internal/delivery/http/middleware"
	"skills-audit/internal/domain/skill"
	"skills-audit/internal/pkg/response"
	"skills-audit/internal/workflow"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	svc *workflow.SkillService
}

func NewSkillHandler(svc *workflow.SkillService) *SkillHandler {
	return &SkillHandler{svc: svc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Post("/", h.Create)
	grp.Get("/employee/:employeeId", h.ListByEmployee)
	grp.Patch("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req dto.CreateSkillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid employeeId", nil, err)
	}

	sk, err := h.svc.Create(c.Context(), workflow.CreateSkillInput{
		EmployeeID:      employeeID,
		Name:            req.SkillName,
		Category:        req.Category,
		Proficiency:     skill.Proficiency(req.ProficiencyLevel),
		YearsExperience: req.YearsOfExperience,
		LastUsed:        req.LastUsed,
	})
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, sk)
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateSkillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := workflow.UpdateSkillInput{
		Name:            req.SkillName,
		Category:        req.Category,
		YearsExperience: req.YearsOfExperience,
		LastUsed:        req.LastUsed,
	}
	if req.ProficiencyLevel != nil {
		p := skill.Proficiency(*req.ProficiencyLevel)
		in.Proficiency = &p
	}

	sk, err := h.svc.Update(c.Context(), id, in)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, sk)
}

func (h *SkillHandler) ListByEmployee(c fiber.Ctx) error {
	employeeID, err := pathID(c, "employeeId")
	if err != nil {
		return err
	}
	items, err := h.svc.ListByEmployee(c.Context(), employeeID)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
