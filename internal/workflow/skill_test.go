package workflow

import (
	"context"
	"errors"
	"testing"

	"skills-audit/internal/domain/employee"
	"skills-audit/internal/domain/skill"
	"skills-audit/internal/store"

	"github.com/google/uuid"
)

func newSkillFixture(t *testing.T) (*SkillService, *employee.Repository) {
	t.Helper()
	mem := store.NewMemory()
	employees := employee.NewRepository(mem)
	skills := skill.NewRepository(mem)
	return NewSkillService(skills, employees, nil, quietLogger()), employees
}

func seedEmployee(t *testing.T, employees *employee.Repository) employee.Employee {
	t.Helper()
	e, err := employees.Create(context.Background(), employee.Employee{
		ExternalID: "ext-1",
		Name:       "Dana",
		Email:      "dana@example.com",
		Role:       employee.RoleEmployee,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return e
}

func TestSkillCreate_ValidatesProficiency(t *testing.T) {
	svc, employees := newSkillFixture(t)
	emp := seedEmployee(t, employees)

	_, err := svc.Create(context.Background(), CreateSkillInput{
		EmployeeID:  emp.ID,
		Name:        "Go",
		Category:    "Programming",
		Proficiency: "wizard",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown proficiency, got %v", err)
	}

	sk, err := svc.Create(context.Background(), CreateSkillInput{
		EmployeeID:  emp.ID,
		Name:        "Go",
		Category:    "Programming",
		Proficiency: skill.ProficiencyExpert,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sk.Proficiency != skill.ProficiencyExpert {
		t.Fatalf("expected expert proficiency, got %s", sk.Proficiency)
	}
}

func TestSkillCreate_RequiresExistingEmployee(t *testing.T) {
	svc, _ := newSkillFixture(t)

	_, err := svc.Create(context.Background(), CreateSkillInput{
		EmployeeID:  uuid.New(),
		Name:        "Go",
		Category:    "Programming",
		Proficiency: skill.ProficiencyBeginner,
	})
	if !errors.Is(err, ErrDependencyMissing) {
		t.Fatalf("expected ErrDependencyMissing, got %v", err)
	}
}

func TestSkillUpdate_RejectsNegativeExperience(t *testing.T) {
	svc, employees := newSkillFixture(t)
	emp := seedEmployee(t, employees)

	sk, err := svc.Create(context.Background(), CreateSkillInput{
		EmployeeID:  emp.ID,
		Name:        "Go",
		Category:    "Programming",
		Proficiency: skill.ProficiencyIntermediate,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	years := -2
	if _, err := svc.Update(context.Background(), sk.ID, UpdateSkillInput{YearsExperience: &years}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSkillListByEmployee_SortedByName(t *testing.T) {
	svc, employees := newSkillFixture(t)
	emp := seedEmployee(t, employees)

	for _, name := range []string{"SQL", "Go", "Kubernetes"} {
		if _, err := svc.Create(context.Background(), CreateSkillInput{
			EmployeeID:  emp.ID,
			Name:        name,
			Category:    "Tech",
			Proficiency: skill.ProficiencyBeginner,
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	items, err := svc.ListByEmployee(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 skills, got %d", len(items))
	}
	if items[0].Name != "Go" || items[1].Name != "Kubernetes" || items[2].Name != "SQL" {
		t.Fatalf("expected name order, got %s %s %s", items[0].Name, items[1].Name, items[2].Name)
	}
}
