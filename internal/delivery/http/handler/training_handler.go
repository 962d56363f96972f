package handler

import (
	"skills-audit/internal/delivery/http/dto"
	"skills-audit/internal/delivery/http/middleware"
	"skills-audit/internal/domain/training"
	"skills-audit/internal/pkg/response"
	"skills-audit/internal/workflow"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TrainingHandler struct {
	svc  *workflow.TrainingService
	auth *middleware.AuthMiddleware
}

func NewTrainingHandler(svc *workflow.TrainingService, auth *middleware.AuthMiddleware) *TrainingHandler {
	return &TrainingHandler{svc: svc, auth: auth}
}

func (h *TrainingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/trainings")
	grp.Get("/", h.ListAll, h.auth.RequireAdmin())
	grp.Post("/", h.Create)
	grp.Post("/suggest", h.Suggest, h.auth.RequireAdmin())
	grp.Get("/employee/:employeeId", h.ListByEmployee)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

// ListAll returns every training joined with its owner, newest first.
// A status query parameter narrows the view to one status.
func (h *TrainingHandler) ListAll(c fiber.Ctx) error {
	var (
		items []workflow.TrainingWithEmployee
		err   error
	)
	if status := c.Query("status"); status != "" {
		items, err = h.svc.ListByStatus(c.Context(), training.Status(status))
	} else {
		items, err = h.svc.ListAll(c.Context())
	}
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *TrainingHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, t)
}

func (h *TrainingHandler) Create(c fiber.Ctx) error {
	var req dto.CreateTrainingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid employeeId", nil, err)
	}

	t, err := h.svc.Create(c.Context(), workflow.CreateTrainingInput{
		EmployeeID:  employeeID,
		Name:        req.TrainingName,
		Description: req.Description,
		Provider:    req.Provider,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, t)
}

// Suggest creates a training in the suggested state on behalf of the
// acting admin.
func (h *TrainingHandler) Suggest(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var req dto.SuggestTrainingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid employeeId", nil, err)
	}

	t, err := h.svc.Suggest(c.Context(), workflow.SuggestTrainingInput{
		EmployeeID:  employeeID,
		Name:        req.TrainingName,
		Description: req.Description,
		Provider:    req.Provider,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}, actor)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Training suggested", t)
}

func (h *TrainingHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTrainingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := workflow.UpdateTrainingInput{
		Name:        req.TrainingName,
		Description: req.Description,
		Provider:    req.Provider,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Progress:    req.Progress,
	}
	if req.Status != nil {
		status := training.Status(*req.Status)
		in.Status = &status
	}

	t, err := h.svc.Update(c.Context(), id, in)
	if err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, t)
}

func (h *TrainingHandler) ListByEmployee(c fiber.Ctx) error {
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

func (h *TrainingHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapWorkflowError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
