package workflow

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"skills-audit/internal/domain/employee"
	"skills-audit/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillService struct {
	skills    *skill.Repository
	employees *employee.Repository
	cache     Invalidator
	logger    *log.Logger
}

func NewSkillService(skills *skill.Repository, employees *employee.Repository, cache Invalidator, logger *log.Logger) *SkillService {
	if logger == nil {
		logger = log.Default()
	}
	return &SkillService{skills: skills, employees: employees, cache: cache, logger: logger}
}

type CreateSkillInput struct {
	EmployeeID      uuid.UUID
	Name            string
	Category        string
	Proficiency     skill.Proficiency
	YearsExperience int
	LastUsed        *time.Time
}

func (s *SkillService) Create(ctx context.Context, in CreateSkillInput) (skill.Skill, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" || in.Category == "" {
		return skill.Skill{}, fmt.Errorf("%w: skill name and category are required", ErrValidation)
	}
	if !in.Proficiency.Valid() {
		return skill.Skill{}, fmt.Errorf("%w: unknown proficiency level %q", ErrValidation, in.Proficiency)
	}
	if in.YearsExperience < 0 {
		return skill.Skill{}, fmt.Errorf("%w: years of experience cannot be negative", ErrValidation)
	}

	if _, err := s.employees.GetByID(ctx, in.EmployeeID); err != nil {
		return skill.Skill{}, mapDependency(err)
	}

	sk, err := s.skills.Create(ctx, skill.Skill{
		EmployeeID:      in.EmployeeID,
		Name:            in.Name,
		Category:        in.Category,
		Proficiency:     in.Proficiency,
		YearsExperience: in.YearsExperience,
		LastUsed:        in.LastUsed,
	})
	if err != nil {
		return skill.Skill{}, mapStoreErr(err)
	}

	invalidate(ctx, s.cache)
	return sk, nil
}

type UpdateSkillInput struct {
	Name            *string
	Category        *string
	Proficiency     *skill.Proficiency
	YearsExperience *int
	LastUsed        *time.Time
}

func (s *SkillService) Update(ctx context.Context, id uuid.UUID, in UpdateSkillInput) (skill.Skill, error) {
	sk, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return skill.Skill{}, mapStoreErr(err)
	}

	fields := make(map[string]any)
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return skill.Skill{}, fmt.Errorf("%w: skill name is required", ErrValidation)
		}
		fields["skillName"] = name
		sk.Name = name
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return skill.Skill{}, fmt.Errorf("%w: category is required", ErrValidation)
		}
		fields["category"] = category
		sk.Category = category
	}
	if in.Proficiency != nil {
		if !in.Proficiency.Valid() {
			return skill.Skill{}, fmt.Errorf("%w: unknown proficiency level %q", ErrValidation, *in.Proficiency)
		}
		fields["proficiencyLevel"] = *in.Proficiency
		sk.Proficiency = *in.Proficiency
	}
	if in.YearsExperience != nil {
		if *in.YearsExperience < 0 {
			return skill.Skill{}, fmt.Errorf("%w: years of experience cannot be negative", ErrValidation)
		}
		fields["yearsOfExperience"] = *in.YearsExperience
		sk.YearsExperience = *in.YearsExperience
	}
	if in.LastUsed != nil {
		fields["lastUsed"] = *in.LastUsed
		sk.LastUsed = in.LastUsed
	}

	if len(fields) == 0 {
		return sk, nil
	}

	if err := s.skills.Update(ctx, id, fields); err != nil {
		return skill.Skill{}, mapStoreErr(err)
	}

	invalidate(ctx, s.cache)
	return sk, nil
}

func (s *SkillService) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]skill.Skill, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, mapStoreErr(err)
	}
	items, err := s.skills.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (s *SkillService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.skills.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	invalidate(ctx, s.cache)
	return nil
}
