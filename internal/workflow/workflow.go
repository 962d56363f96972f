package workflow

import (
	"context"
	"errors"
	"fmt"

	"skills-audit/internal/domain/employee"
	"skills-audit/internal/store"

	"github.com/google/uuid"
)

// Error kinds surfaced by every workflow operation. Adapter-level
// failures are converted into one of these instead of leaking raw
// transport errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrDependencyMissing = errors.New("dependency missing")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// Actor identifies the authenticated employee performing an operation.
// It is passed explicitly into every workflow call; there is no ambient
// current-user state.
type Actor struct {
	EmployeeID uuid.UUID
	ExternalID string
	Email      string
	Role       employee.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == employee.RoleAdmin
}

// MapStoreErr converts an adapter-level error into one of the workflow
// error kinds. Callers that talk to the store directly use it to keep a
// single propagation policy.
func MapStoreErr(err error) error {
	return mapStoreErr(err)
}

func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

// Invalidator drops the cached dashboard summary after a successful
// write. The Redis cache satisfies it and is nil-safe.
type Invalidator interface {
	InvalidateDashboard(ctx context.Context) error
}

func invalidate(ctx context.Context, inv Invalidator) {
	if inv != nil {
		_ = inv.InvalidateDashboard(ctx)
	}
}
