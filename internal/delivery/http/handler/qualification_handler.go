package handler

import (
	"skills-audit/internal/delivery/http/dto"
	"skills-audit/internal/delivery/http/middleware"
	"skills-audit/internal/pkg/response"
	"skills-audit/internal/workflow"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type QualificationHandler struct {
	svc  *workflow.QualificationService
	auth *middleware.AuthMiddleware
}

func NewQualificationHandler(svc *workflow.QualificationService, auth *middleware.AuthMiddleware) *QualificationHandler {
	return &QualificationHandler{svc: svc, auth: auth}
}

func (h *QualificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/qualifications")
	grp.Post("/", h.Create)
	grp.Get("/pending", h.ListPending, h.auth.RequireAdmin())
	grp.Get("/employee/:employeeId", h.ListByEmployee)
	grp.Get("/:id", h.Get)
	grp.Post("/:id/approve", h.Approve, h.auth.RequireAdmin())
	grp.Post("/:id/reject", h.Reject, h.auth.RequireAdmin())
	grp.Delete("/:id", h.Delete)
}

func (h *QualificationHandler) Create(c fiber.Ctx) error {
	var req dto.CreateQualificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid employeeId", nil, err)
	}

	q, err := h.svc.Create(c.Context(), workflow.CreateQualificationInput{
		EmployeeID:     employeeID,
		Institution:    req.Institution,
		Name:           req.QualificationName,
		YearObtained:   req.YearObtained,
		CertificateURL: req.CertificateURL,
	})
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, q)
}

func (h *QualificationHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	q, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, q)
}

// ListPending returns pending approvals joined with the owning
// employees, for the approval queue view.
func (h *QualificationHandler) ListPending(c fiber.Ctx) error {
	items, err := h.svc.ListPendingWithEmployees(c.Context())
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *QualificationHandler) ListByEmployee(c fiber.Ctx) error {
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

func (h *QualificationHandler) Approve(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	q, err := h.svc.Approve(c.Context(), id, actor)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, "Qualification approved", q)
}

func (h *QualificationHandler) Reject(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var req dto.RejectQualificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	q, err := h.svc.Reject(c.Context(), id, req.Reason, actor)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, "Qualification rejected", q)
}

func (h *QualificationHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
