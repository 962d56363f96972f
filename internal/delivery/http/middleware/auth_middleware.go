package middleware

import (
	"errors"
	"strings"

	"skills-audit/internal/domain/employee"
	"skills-audit/internal/pkg/jwt"
	"skills-audit/internal/workflow"

	"github.com/gofiber/fiber/v3"
)

const CtxActorKey = "actor"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware validates the bearer token and stores the acting employee
// in request locals under CtxActorKey.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxActorKey, workflow.Actor{
			EmployeeID: claims.EmployeeID,
			ExternalID: claims.ExternalID,
			Email:      claims.Email,
			Role:       employee.Role(claims.Role),
		})

		return c.Next()
	}
}

// RequireAdmin gates a route on the admin role claim. Must run after
// Middleware.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		actor, ok := ActorFromCtx(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if !actor.IsAdmin() {
			return NewAppError(fiber.StatusForbidden, "Admin role required", nil, nil)
		}
		return c.Next()
	}
}

func ActorFromCtx(c fiber.Ctx) (workflow.Actor, bool) {
	actor, ok := c.Locals(CtxActorKey).(workflow.Actor)
	return actor, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
