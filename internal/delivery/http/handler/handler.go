package handler

import (
	"errors"

	"skills-audit/internal/delivery/http/dto"
	"skills-audit/internal/delivery/http/middleware"
	"skills-audit/internal/pkg/response"
	"skills-audit/internal/workflow"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// mapWorkflowError converts workflow error kinds into the AppError the
// error middleware renders. Store failures stay non-fatal 503s.
func mapWorkflowError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, workflow.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, workflow.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, workflow.ErrDependencyMissing):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "referenced employee not found", nil, err)
	case errors.Is(err, workflow.ErrStoreUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func pathID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "invalid id", nil, err)
	}
	return id, nil
}

func bindAndValidate(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := dto.Validate(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	}
	return nil
}
