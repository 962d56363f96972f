package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"skills-audit/internal/domain/employee"
	"skills-audit/internal/notify"
	"skills-audit/internal/store"

	"github.com/google/uuid"
)

type EmployeeService struct {
	employees *employee.Repository
	notifier  *notify.Notifier
	cache     Invalidator
	logger    *log.Logger
}

func NewEmployeeService(
	employees *employee.Repository,
	notifier *notify.Notifier,
	cache Invalidator,
	logger *log.Logger,
) *EmployeeService {
	if logger == nil {
		logger = log.Default()
	}
	return &EmployeeService{employees: employees, notifier: notifier, cache: cache, logger: logger}
}

type CreateEmployeeInput struct {
	ExternalID string
	Name       string
	Email      string
	CellNumber string
	Profession string
	Role       employee.Role
}

func (s *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (employee.Employee, error) {
	in.ExternalID = strings.TrimSpace(in.ExternalID)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.ExternalID == "" || in.Name == "" || in.Email == "" {
		return employee.Employee{}, fmt.Errorf("%w: externalId, name and email are required", ErrValidation)
	}
	if in.Role == "" {
		in.Role = employee.RoleEmployee
	}
	if !in.Role.Valid() {
		return employee.Employee{}, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}

	// externalId must stay unique across employees.
	if _, err := s.employees.GetByExternalID(ctx, in.ExternalID); err == nil {
		return employee.Employee{}, fmt.Errorf("%w: externalId already registered", ErrValidation)
	} else if !isNotFound(err) {
		return employee.Employee{}, mapStoreErr(err)
	}

	e, err := s.employees.Create(ctx, employee.Employee{
		ExternalID: in.ExternalID,
		Name:       in.Name,
		Email:      in.Email,
		CellNumber: in.CellNumber,
		Profession: in.Profession,
		Role:       in.Role,
		IsActive:   true,
	})
	if err != nil {
		return employee.Employee{}, mapStoreErr(err)
	}

	invalidate(ctx, s.cache)
	s.logger.Printf("employee created | id=%s externalId=%s", e.ID, e.ExternalID)
	return e, nil
}

type UpdateEmployeeInput struct {
	Name       *string
	Email      *string
	CellNumber *string
	Profession *string
	IsActive   *bool
}

// Update edits profile fields and notifies the employee. Role is not
// part of the input: it is immutable after creation.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, in UpdateEmployeeInput) (employee.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, mapStoreErr(err)
	}

	fields := make(map[string]any)
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return employee.Employee{}, fmt.Errorf("%w: name is required", ErrValidation)
		}
		fields["name"] = name
		e.Name = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return employee.Employee{}, fmt.Errorf("%w: email is required", ErrValidation)
		}
		fields["email"] = email
		e.Email = email
	}
	if in.CellNumber != nil {
		fields["cellNumber"] = *in.CellNumber
		e.CellNumber = *in.CellNumber
	}
	if in.Profession != nil {
		fields["profession"] = *in.Profession
		e.Profession = *in.Profession
	}
	if in.IsActive != nil {
		fields["isActive"] = *in.IsActive
		e.IsActive = *in.IsActive
	}

	if len(fields) == 0 {
		return e, nil
	}

	if err := s.employees.Update(ctx, id, fields); err != nil {
		return employee.Employee{}, mapStoreErr(err)
	}

	invalidate(ctx, s.cache)
	s.notifier.Dispatch(ctx, notify.ProfileUpdated(e, "Your profile has been updated by HR."))
	return e, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, mapStoreErr(err)
	}
	return e, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]employee.Employee, error) {
	items, err := s.employees.List(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return items, nil
}

// ListActive returns only employees whose record is marked active.
func (s *EmployeeService) ListActive(ctx context.Context) ([]employee.Employee, error) {
	items, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return items, nil
}

// Delete removes the employee record only. Child records are left in
// place deliberately: they stay reachable through per-employee queries
// and carry historical audit value. No cascade.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	invalidate(ctx, s.cache)
	s.logger.Printf("employee deleted | id=%s (child records retained)", id)
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound) || errors.Is(err, ErrNotFound)
}
