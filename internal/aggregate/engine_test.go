package aggregate

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"skills-audit/internal/domain/employee"
	"skills-audit/internal/domain/qualification"
	"skills-audit/internal/domain/skill"
	"skills-audit/internal/domain/training"
	"skills-audit/internal/store"

	"github.com/google/uuid"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// faultyStore fails Query calls for one employee id to exercise the
// degrade-gracefully path.
type faultyStore struct {
	store.Store
	failFor string
}

func (f *faultyStore) Query(ctx context.Context, collection, field, value string) ([]store.Document, error) {
	if field == "employeeId" && value == f.failFor {
		return nil, store.ErrUnavailable
	}
	return f.Store.Query(ctx, collection, field, value)
}

type engineFixture struct {
	mem            *store.Memory
	employees      *employee.Repository
	qualifications *qualification.Repository
	trainings      *training.Repository
	skills         *skill.Repository
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	mem := store.NewMemory()
	return &engineFixture{
		mem:            mem,
		employees:      employee.NewRepository(mem),
		qualifications: qualification.NewRepository(mem),
		trainings:      training.NewRepository(mem),
		skills:         skill.NewRepository(mem),
	}
}

func (f *engineFixture) engine(workers int) *Engine {
	return NewEngine(f.employees, f.qualifications, f.trainings, f.skills, nil, 0, workers, quietLogger())
}

func (f *engineFixture) engineOver(s store.Store, workers int) *Engine {
	return NewEngine(
		employee.NewRepository(s),
		qualification.NewRepository(s),
		training.NewRepository(s),
		skill.NewRepository(s),
		nil, 0, workers, quietLogger(),
	)
}

func (f *engineFixture) addEmployee(t *testing.T, name, profession string, active bool) employee.Employee {
	t.Helper()
	e, err := f.employees.Create(context.Background(), employee.Employee{
		ExternalID: "ext-" + name,
		Name:       name,
		Email:      name + "@example.com",
		Profession: profession,
		Role:       employee.RoleEmployee,
		IsActive:   active,
	})
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return e
}

func (f *engineFixture) addQualifications(t *testing.T, employeeID uuid.UUID, n int, status qualification.Status) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := f.qualifications.Create(context.Background(), qualification.Qualification{
			EmployeeID: employeeID,
			Name:       "qual",
			Status:     status,
		}); err != nil {
			t.Fatalf("seed qualification: %v", err)
		}
	}
}

func (f *engineFixture) addTraining(t *testing.T, employeeID uuid.UUID, status training.Status) {
	t.Helper()
	if _, err := f.trainings.Create(context.Background(), training.Training{
		EmployeeID: employeeID,
		Name:       "course",
		Status:     status,
	}); err != nil {
		t.Fatalf("seed training: %v", err)
	}
}

func (f *engineFixture) addSkill(t *testing.T, employeeID uuid.UUID, category string) {
	t.Helper()
	if _, err := f.skills.Create(context.Background(), skill.Skill{
		EmployeeID:  employeeID,
		Name:        "s",
		Category:    category,
		Proficiency: skill.ProficiencyBeginner,
	}); err != nil {
		t.Fatalf("seed skill: %v", err)
	}
}

func TestDashboard_CountsAndDistributions(t *testing.T) {
	f := newEngineFixture(t)

	a := f.addEmployee(t, "a", "Engineer", true)
	b := f.addEmployee(t, "b", "Engineer", true)
	c := f.addEmployee(t, "c", "Nurse", false)

	f.addQualifications(t, a.ID, 2, qualification.StatusApproved)
	f.addQualifications(t, b.ID, 1, qualification.StatusPending)
	f.addQualifications(t, c.ID, 3, qualification.StatusRejected)

	f.addTraining(t, a.ID, training.StatusCompleted)
	f.addTraining(t, a.ID, training.StatusInProgress)
	f.addTraining(t, b.ID, training.StatusSuggested)
	f.addTraining(t, c.ID, training.StatusNotStarted)

	f.addSkill(t, a.ID, "Programming")
	f.addSkill(t, b.ID, "Programming")
	f.addSkill(t, c.ID, "Clinical")

	s, err := f.engine(4).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if s.TotalEmployees != 3 || s.ActiveEmployees != 2 {
		t.Fatalf("employee counts wrong: %+v", s)
	}
	if s.TotalQualifications != 6 {
		t.Fatalf("expected 6 qualifications total, got %d", s.TotalQualifications)
	}
	if s.PendingApprovals != 1 || len(s.PendingItems) != 1 {
		t.Fatalf("pending counts wrong: %+v", s)
	}
	if s.CompletedTrainings != 1 || s.InProgressTrainings != 1 {
		t.Fatalf("training counts wrong: %+v", s)
	}
	if len(s.SuggestedTrainings) != 1 {
		t.Fatalf("expected 1 suggested training, got %d", len(s.SuggestedTrainings))
	}
	if s.Partial {
		t.Fatalf("expected complete data")
	}

	if s.ProfessionDistribution["Engineer"] != 2 || s.ProfessionDistribution["Nurse"] != 1 {
		t.Fatalf("profession distribution wrong: %v", s.ProfessionDistribution)
	}
	if s.SkillCategoryDistribution["Programming"] != 2 || s.SkillCategoryDistribution["Clinical"] != 1 {
		t.Fatalf("category distribution wrong: %v", s.SkillCategoryDistribution)
	}
	if s.TrainingStatusDistribution[string(training.StatusCompleted)] != 1 {
		t.Fatalf("status distribution wrong: %v", s.TrainingStatusDistribution)
	}
}

// Each distribution is a partition: its counts sum to the collection
// size.
func TestDashboard_DistributionPartition(t *testing.T) {
	f := newEngineFixture(t)

	professions := []string{"Engineer", "Nurse", "Engineer", "Teacher", "Nurse"}
	for i, p := range professions {
		e := f.addEmployee(t, string(rune('a'+i)), p, true)
		f.addSkill(t, e.ID, p)
		f.addTraining(t, e.ID, training.StatusNotStarted)
	}

	s, err := f.engine(2).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	sum := func(m map[string]int) int {
		n := 0
		for _, v := range m {
			n += v
		}
		return n
	}
	if got := sum(s.ProfessionDistribution); got != len(professions) {
		t.Fatalf("profession partition broken: sum=%d want=%d", got, len(professions))
	}
	if got := sum(s.SkillCategoryDistribution); got != len(professions) {
		t.Fatalf("category partition broken: sum=%d want=%d", got, len(professions))
	}
	if got := sum(s.TrainingStatusDistribution); got != len(professions) {
		t.Fatalf("status partition broken: sum=%d want=%d", got, len(professions))
	}
}

// The fan-out total must equal the sum of direct per-employee queries.
func TestDashboard_FanOutMatchesDirectQueries(t *testing.T) {
	f := newEngineFixture(t)

	counts := []int{0, 3, 1, 5, 2, 4, 1, 0, 2, 3}
	ids := make([]uuid.UUID, len(counts))
	for i, n := range counts {
		e := f.addEmployee(t, string(rune('a'+i)), "Engineer", true)
		ids[i] = e.ID
		f.addQualifications(t, e.ID, n, qualification.StatusApproved)
	}

	s, err := f.engine(3).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	direct := 0
	for _, id := range ids {
		items, err := f.qualifications.ListByEmployee(context.Background(), id)
		if err != nil {
			t.Fatalf("direct query: %v", err)
		}
		direct += len(items)
	}
	if s.TotalQualifications != direct {
		t.Fatalf("fan-out total %d != direct total %d", s.TotalQualifications, direct)
	}
}

func TestDashboard_PartialOnSubQueryFailure(t *testing.T) {
	f := newEngineFixture(t)

	a := f.addEmployee(t, "a", "Engineer", true)
	b := f.addEmployee(t, "b", "Engineer", true)
	f.addQualifications(t, a.ID, 2, qualification.StatusApproved)
	f.addQualifications(t, b.ID, 3, qualification.StatusApproved)

	eng := f.engineOver(&faultyStore{Store: f.mem, failFor: b.ID.String()}, 2)

	s, err := eng.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard should degrade, not fail: %v", err)
	}
	if !s.Partial {
		t.Fatalf("expected partial flag on sub-query failure")
	}
	// the failed employee contributes an empty sub-result
	if s.TotalQualifications != 2 {
		t.Fatalf("expected 2 qualifications from the healthy employee, got %d", s.TotalQualifications)
	}
}

func TestDashboard_RecentEmployeesNewestFirst(t *testing.T) {
	f := newEngineFixture(t)

	var last uuid.UUID
	for i := 0; i < 7; i++ {
		e := f.addEmployee(t, string(rune('a'+i)), "Engineer", true)
		last = e.ID
		time.Sleep(2 * time.Millisecond)
	}

	s, err := f.engine(2).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(s.RecentEmployees) != 5 {
		t.Fatalf("expected 5 recent employees, got %d", len(s.RecentEmployees))
	}
	if s.RecentEmployees[0].ID != last {
		t.Fatalf("expected newest employee first")
	}
	for i := 1; i < len(s.RecentEmployees); i++ {
		if s.RecentEmployees[i].CreatedAt.After(s.RecentEmployees[i-1].CreatedAt) {
			t.Fatalf("recent employees not in createdAt desc order")
		}
	}
}

type stubCache struct {
	setKeys []string
	hit     *Summary
}

func (c *stubCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if c.hit == nil {
		return false, nil
	}
	*(out.(*Summary)) = *c.hit
	return true, nil
}

func (c *stubCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.setKeys = append(c.setKeys, key)
	return nil
}

func TestDashboard_ServesCachedSummary(t *testing.T) {
	f := newEngineFixture(t)
	f.addEmployee(t, "a", "Engineer", true)

	cached := Summary{TotalEmployees: 42}
	c := &stubCache{hit: &cached}
	eng := NewEngine(f.employees, f.qualifications, f.trainings, f.skills, c, 0, 2, quietLogger())

	s, err := eng.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if s.TotalEmployees != 42 {
		t.Fatalf("expected cached summary, got %+v", s)
	}
	if len(c.setKeys) != 0 {
		t.Fatalf("cache hit must not rewrite the cache")
	}
}

func TestDashboard_CachesFreshSummary(t *testing.T) {
	f := newEngineFixture(t)
	f.addEmployee(t, "a", "Engineer", true)

	c := &stubCache{}
	eng := NewEngine(f.employees, f.qualifications, f.trainings, f.skills, c, 0, 2, quietLogger())

	if _, err := eng.Dashboard(context.Background()); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(c.setKeys) != 1 {
		t.Fatalf("expected one cache write, got %d", len(c.setKeys))
	}
}

func TestWorkforceRecords_BundlesPerEmployee(t *testing.T) {
	f := newEngineFixture(t)

	a := f.addEmployee(t, "a", "Engineer", true)
	b := f.addEmployee(t, "b", "Nurse", true)
	f.addQualifications(t, a.ID, 2, qualification.StatusApproved)
	f.addSkill(t, b.ID, "Clinical")
	f.addTraining(t, b.ID, training.StatusInProgress)

	bundles, partial, err := f.engine(2).WorkforceRecords(context.Background())
	if err != nil {
		t.Fatalf("workforceRecords: %v", err)
	}
	if partial {
		t.Fatalf("expected complete data")
	}
	if len(bundles) != 2 {
		t.Fatalf("expected 2 bundles, got %d", len(bundles))
	}

	byID := make(map[uuid.UUID]RecordBundle)
	for _, bundle := range bundles {
		byID[bundle.Employee.ID] = bundle
	}
	if got := byID[a.ID]; len(got.Qualifications) != 2 || len(got.Skills) != 0 {
		t.Fatalf("bundle for a wrong: %+v", got)
	}
	if got := byID[b.ID]; len(got.Skills) != 1 || len(got.Trainings) != 1 {
		t.Fatalf("bundle for b wrong: %+v", got)
	}
}

func TestEmployeeRecords_MissingEmployee(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.engine(2).EmployeeRecords(context.Background(), uuid.New())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
