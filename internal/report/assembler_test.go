package report

import (
	"context"
	"io"
	"log"
	"testing"

	"skills-audit/internal/aggregate"
	"skills-audit/internal/domain/employee"
	"skills-audit/internal/domain/qualification"
	"skills-audit/internal/domain/skill"
	"skills-audit/internal/domain/training"
	"skills-audit/internal/store"

	"github.com/google/uuid"
)

type fixture struct {
	employees      *employee.Repository
	qualifications *qualification.Repository
	trainings      *training.Repository
	skills         *skill.Repository
	assembler      *Assembler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemory()
	f := &fixture{
		employees:      employee.NewRepository(mem),
		qualifications: qualification.NewRepository(mem),
		trainings:      training.NewRepository(mem),
		skills:         skill.NewRepository(mem),
	}
	engine := aggregate.NewEngine(
		f.employees, f.qualifications, f.trainings, f.skills,
		nil, 0, 2, log.New(io.Discard, "", 0),
	)
	f.assembler = NewAssembler(engine)
	return f
}

func (f *fixture) addEmployee(t *testing.T, name, profession string) employee.Employee {
	t.Helper()
	e, err := f.employees.Create(context.Background(), employee.Employee{
		ExternalID: "ext-" + name,
		Name:       name,
		Email:      name + "@example.com",
		Profession: profession,
		Role:       employee.RoleEmployee,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return e
}

func TestEmployeeList_FlatAndSorted(t *testing.T) {
	f := newFixture(t)
	f.addEmployee(t, "zoe", "Engineer")
	f.addEmployee(t, "adam", "Nurse")

	employees, err := f.employees.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	rows := f.assembler.EmployeeList(context.Background(), employees)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "adam" || rows[1].Name != "zoe" {
		t.Fatalf("expected name order, got %s %s", rows[0].Name, rows[1].Name)
	}
	if rows[0].Profession != "Nurse" || !rows[0].IsActive {
		t.Fatalf("row fields wrong: %+v", rows[0])
	}
}

func TestSummary_TablesAndBreakdown(t *testing.T) {
	f := newFixture(t)
	a := f.addEmployee(t, "alice", "Engineer")
	b := f.addEmployee(t, "bob", "Engineer")

	ctx := context.Background()
	if _, err := f.skills.Create(ctx, skill.Skill{EmployeeID: a.ID, Name: "Go", Category: "Programming", Proficiency: skill.ProficiencyAdvanced}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := f.skills.Create(ctx, skill.Skill{EmployeeID: b.ID, Name: "SQL", Category: "Programming", Proficiency: skill.ProficiencyIntermediate}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := f.skills.Create(ctx, skill.Skill{EmployeeID: b.ID, Name: "Jira", Category: "Tooling", Proficiency: skill.ProficiencyBeginner}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := f.qualifications.Create(ctx, qualification.Qualification{EmployeeID: a.ID, Name: "BSc", Status: qualification.StatusApproved}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := f.qualifications.Create(ctx, qualification.Qualification{EmployeeID: a.ID, Name: "Cert", Status: qualification.StatusPending}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := f.trainings.Create(ctx, training.Training{EmployeeID: b.ID, Name: "K8s", Status: training.StatusInProgress}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tables, err := f.assembler.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if tables.Partial {
		t.Fatalf("expected complete data")
	}
	if tables.SkillsByCategory["Programming"] != 2 || tables.SkillsByCategory["Tooling"] != 1 {
		t.Fatalf("skills-by-category wrong: %v", tables.SkillsByCategory)
	}
	if tables.Professions["Engineer"] != 2 {
		t.Fatalf("professions wrong: %v", tables.Professions)
	}
	if len(tables.Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown rows, got %d", len(tables.Breakdown))
	}
	// sorted by employee name
	if tables.Breakdown[0].EmployeeName != "alice" {
		t.Fatalf("expected alice first, got %s", tables.Breakdown[0].EmployeeName)
	}
	alice := tables.Breakdown[0]
	if alice.Qualifications[string(qualification.StatusApproved)] != 1 ||
		alice.Qualifications[string(qualification.StatusPending)] != 1 {
		t.Fatalf("alice qualification breakdown wrong: %v", alice.Qualifications)
	}
	bob := tables.Breakdown[1]
	if bob.Trainings[string(training.StatusInProgress)] != 1 {
		t.Fatalf("bob training breakdown wrong: %v", bob.Trainings)
	}
}

func TestEmployeeBundle_JoinsSubRecords(t *testing.T) {
	f := newFixture(t)
	a := f.addEmployee(t, "alice", "Engineer")

	ctx := context.Background()
	if _, err := f.qualifications.Create(ctx, qualification.Qualification{EmployeeID: a.ID, Name: "BSc", Status: qualification.StatusApproved}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := f.trainings.Create(ctx, training.Training{EmployeeID: a.ID, Name: "K8s", Status: training.StatusSuggested}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	bundle, err := f.assembler.EmployeeBundle(ctx, a.ID)
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	if bundle.Employee.ID != a.ID {
		t.Fatalf("wrong employee in bundle")
	}
	if len(bundle.Qualifications) != 1 || len(bundle.Trainings) != 1 || len(bundle.Skills) != 0 {
		t.Fatalf("bundle shape wrong: %+v", bundle)
	}
}

func TestEmployeeBundle_MissingEmployee(t *testing.T) {
	f := newFixture(t)
	if _, err := f.assembler.EmployeeBundle(context.Background(), uuid.New()); err == nil {
		t.Fatalf("expected error for missing employee")
	}
}

func TestTrainingProgress_RowsJoinedWithOwner(t *testing.T) {
	f := newFixture(t)
	a := f.addEmployee(t, "alice", "Engineer")
	b := f.addEmployee(t, "bob", "Nurse")

	ctx := context.Background()
	if _, err := f.trainings.Create(ctx, training.Training{EmployeeID: a.ID, Name: "Go", Status: training.StatusCompleted, Progress: 100}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := f.trainings.Create(ctx, training.Training{EmployeeID: b.ID, Name: "First Aid", Status: training.StatusInProgress, Progress: 40}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rows, err := f.assembler.TrainingProgress(ctx)
	if err != nil {
		t.Fatalf("trainingProgress: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].EmployeeName != "alice" || rows[0].TrainingName != "Go" || rows[0].Progress != 100 {
		t.Fatalf("first row wrong: %+v", rows[0])
	}
	if rows[1].EmployeeName != "bob" || rows[1].Status != training.StatusInProgress {
		t.Fatalf("second row wrong: %+v", rows[1])
	}
}
