package report

import (
	"context"
	"sort"

	"skills-audit/internal/aggregate"
	"skills-audit/internal/domain/employee"
	"skills-audit/internal/domain/qualification"
	"skills-audit/internal/domain/training"

	"github.com/google/uuid"
)

// EmployeeRow is one line of the flat employee list.
type EmployeeRow struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"externalId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Profession string    `json:"profession"`
	IsActive   bool      `json:"isActive"`
}

// StatusBreakdown counts one employee's qualification and training
// records per status.
type StatusBreakdown struct {
	EmployeeID     uuid.UUID      `json:"employeeId"`
	EmployeeName   string         `json:"employeeName"`
	Qualifications map[string]int `json:"qualifications"`
	Trainings      map[string]int `json:"trainings"`
}

// SummaryTables holds the cross-employee report tables.
type SummaryTables struct {
	SkillsByCategory map[string]int    `json:"skillsByCategory"`
	Professions      map[string]int    `json:"professions"`
	Breakdown        []StatusBreakdown `json:"breakdown"`
	Partial          bool              `json:"partial"`
}

// ProgressRow is one training with its owner, shaped for the external
// progress-report renderer.
type ProgressRow struct {
	EmployeeID   uuid.UUID       `json:"employeeId"`
	EmployeeName string          `json:"employeeName"`
	TrainingName string          `json:"trainingName"`
	Provider     string          `json:"provider,omitempty"`
	Status       training.Status `json:"status"`
	Progress     int             `json:"progress"`
}

type Assembler struct {
	engine *aggregate.Engine
}

func NewAssembler(engine *aggregate.Engine) *Assembler {
	return &Assembler{engine: engine}
}

// EmployeeList returns the flat list, no joins.
func (a *Assembler) EmployeeList(ctx context.Context, employees []employee.Employee) []EmployeeRow {
	rows := make([]EmployeeRow, 0, len(employees))
	for _, emp := range employees {
		rows = append(rows, EmployeeRow{
			ID:         emp.ID,
			ExternalID: emp.ExternalID,
			Name:       emp.Name,
			Email:      emp.Email,
			Profession: emp.Profession,
			IsActive:   emp.IsActive,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// EmployeeBundle returns the per-employee detailed bundle.
func (a *Assembler) EmployeeBundle(ctx context.Context, id uuid.UUID) (aggregate.RecordBundle, error) {
	return a.engine.EmployeeRecords(ctx, id)
}

// Summary assembles the cross-employee tables from a full fan-out.
func (a *Assembler) Summary(ctx context.Context) (SummaryTables, error) {
	bundles, partial, err := a.engine.WorkforceRecords(ctx)
	if err != nil {
		return SummaryTables{}, err
	}

	tables := SummaryTables{
		SkillsByCategory: make(map[string]int),
		Professions:      make(map[string]int),
		Breakdown:        make([]StatusBreakdown, 0, len(bundles)),
		Partial:          partial,
	}

	for _, b := range bundles {
		tables.Professions[b.Employee.Profession]++
		for _, sk := range b.Skills {
			tables.SkillsByCategory[sk.Category]++
		}
		tables.Breakdown = append(tables.Breakdown, StatusBreakdown{
			EmployeeID:     b.Employee.ID,
			EmployeeName:   b.Employee.Name,
			Qualifications: countQualificationStatuses(b.Qualifications),
			Trainings:      countTrainingStatuses(b.Trainings),
		})
	}

	sort.Slice(tables.Breakdown, func(i, j int) bool {
		return tables.Breakdown[i].EmployeeName < tables.Breakdown[j].EmployeeName
	})
	return tables, nil
}

// TrainingProgress shapes every training into a renderer row, joined
// with its owner.
func (a *Assembler) TrainingProgress(ctx context.Context) ([]ProgressRow, error) {
	bundles, _, err := a.engine.WorkforceRecords(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ProgressRow, 0)
	for _, b := range bundles {
		for _, t := range b.Trainings {
			rows = append(rows, ProgressRow{
				EmployeeID:   b.Employee.ID,
				EmployeeName: b.Employee.Name,
				TrainingName: t.Name,
				Provider:     t.Provider,
				Status:       t.Status,
				Progress:     t.Progress,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].EmployeeName != rows[j].EmployeeName {
			return rows[i].EmployeeName < rows[j].EmployeeName
		}
		return rows[i].TrainingName < rows[j].TrainingName
	})
	return rows, nil
}

func countQualificationStatuses(items []qualification.Qualification) map[string]int {
	out := make(map[string]int)
	for _, q := range items {
		out[string(q.Status)]++
	}
	return out
}

func countTrainingStatuses(items []training.Training) map[string]int {
	out := make(map[string]int)
	for _, t := range items {
		out[string(t.Status)]++
	}
	return out
}
