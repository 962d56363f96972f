package aggregate

import (
	"context"
	"log"
	"sort"
	"sync/atomic"
	"time"

	"skills-audit/internal/domain/employee"
	"skills-audit/internal/domain/qualification"
	"skills-audit/internal/domain/skill"
	"skills-audit/internal/domain/training"
	"skills-audit/internal/infrastructure/cache"

	"github.com/google/uuid"
)

const summaryTopN = 5

// Summary is the dashboard payload. Partial is set when one or more
// per-employee sub-queries failed and their contribution was dropped.
type Summary struct {
	TotalEmployees      int `json:"totalEmployees"`
	ActiveEmployees     int `json:"activeEmployees"`
	TotalQualifications int `json:"totalQualifications"`

	PendingApprovals int                           `json:"pendingApprovals"`
	PendingItems     []qualification.Qualification `json:"pendingItems"`

	CompletedTrainings  int                 `json:"completedTrainings"`
	InProgressTrainings int                 `json:"inProgressTrainings"`
	SuggestedTrainings  []training.Training `json:"suggestedTrainings"`

	RecentEmployees []employee.Employee `json:"recentEmployees"`

	ProfessionDistribution     map[string]int `json:"professionDistribution"`
	TrainingStatusDistribution map[string]int `json:"trainingStatusDistribution"`
	SkillCategoryDistribution  map[string]int `json:"skillCategoryDistribution"`

	Partial     bool      `json:"partial"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// RecordBundle joins one employee with all of its sub-records.
type RecordBundle struct {
	Employee       employee.Employee             `json:"employee"`
	Qualifications []qualification.Qualification `json:"qualifications"`
	Skills         []skill.Skill                 `json:"skills"`
	Trainings      []training.Training           `json:"trainings"`
}

type summaryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Engine struct {
	employees      *employee.Repository
	qualifications *qualification.Repository
	trainings      *training.Repository
	skills         *skill.Repository

	cache   summaryCache
	ttl     time.Duration
	workers int
	logger  *log.Logger
}

func NewEngine(
	employees *employee.Repository,
	qualifications *qualification.Repository,
	trainings *training.Repository,
	skills *skill.Repository,
	c summaryCache,
	ttl time.Duration,
	workers int,
	logger *log.Logger,
) *Engine {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		employees:      employees,
		qualifications: qualifications,
		trainings:      trainings,
		skills:         skills,
		cache:          c,
		ttl:            ttl,
		workers:        workers,
		logger:         logger,
	}
}

// Dashboard builds the summary, serving the cached copy when fresh.
// Partial summaries are never cached.
func (e *Engine) Dashboard(ctx context.Context) (Summary, error) {
	if e.cache != nil {
		var cached Summary
		if ok, err := e.cache.GetJSON(ctx, cache.DashboardKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	s, err := e.buildSummary(ctx)
	if err != nil {
		return Summary{}, err
	}

	if e.cache != nil && !s.Partial {
		if err := e.cache.SetJSON(ctx, cache.DashboardKey, s, e.ttl); err != nil {
			e.logger.Printf("dashboard cache write failed | err=%v", err)
		}
	}
	return s, nil
}

func (e *Engine) buildSummary(ctx context.Context) (Summary, error) {
	employees, err := e.employees.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	trainings, err := e.trainings.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	skills, err := e.skills.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	pending, err := e.qualifications.ListPending(ctx)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		TotalEmployees:   len(employees),
		PendingApprovals: len(pending),
		PendingItems:     head(pending, summaryTopN),
		GeneratedAt:      time.Now().UTC(),
	}

	for _, emp := range employees {
		if emp.IsActive {
			s.ActiveEmployees++
		}
	}

	suggested := make([]training.Training, 0, summaryTopN)
	for _, t := range trainings {
		switch t.Status {
		case training.StatusCompleted:
			s.CompletedTrainings++
		case training.StatusInProgress:
			s.InProgressTrainings++
		case training.StatusSuggested:
			if len(suggested) < summaryTopN {
				suggested = append(suggested, t)
			}
		}
	}
	s.SuggestedTrainings = suggested

	s.RecentEmployees = recentEmployees(employees, summaryTopN)

	s.ProfessionDistribution = groupCount(employees, func(emp employee.Employee) string {
		return emp.Profession
	})
	s.TrainingStatusDistribution = groupCount(trainings, func(t training.Training) string {
		return string(t.Status)
	})
	s.SkillCategoryDistribution = groupCount(skills, func(sk skill.Skill) string {
		return sk.Category
	})

	counts, partial := e.fanOutCounts(ctx, employees)
	for _, n := range counts {
		s.TotalQualifications += n
	}
	s.Partial = partial

	return s, nil
}

// fanOutCounts queries each employee's qualification count through the
// worker pool. Each task writes only its own slice index; failures leave
// the index at zero and flip the partial flag.
func (e *Engine) fanOutCounts(ctx context.Context, employees []employee.Employee) ([]int, bool) {
	counts := make([]int, len(employees))
	var partial atomic.Bool

	pool := NewWorkerPool(e.workers, len(employees))
	results := pool.Run(ctx)

	go func() {
		for i := range employees {
			i := i
			id := employees[i].ID
			pool.Submit(func(taskCtx context.Context) error {
				quals, err := e.qualifications.ListByEmployee(taskCtx, id)
				if err != nil {
					e.logger.Printf("dashboard fan-out degraded | employee=%s err=%v", id, err)
					partial.Store(true)
					return err
				}
				counts[i] = len(quals)
				return nil
			})
		}
		pool.Close()
	}()

	for range results {
	}
	return counts, partial.Load()
}

// EmployeeRecords joins one employee with its qualifications, skills and
// trainings. A failed sub-query degrades to an empty slice.
func (e *Engine) EmployeeRecords(ctx context.Context, id uuid.UUID) (RecordBundle, error) {
	emp, err := e.employees.GetByID(ctx, id)
	if err != nil {
		return RecordBundle{}, err
	}
	bundle, _ := e.collectBundle(ctx, emp)
	return bundle, nil
}

// WorkforceRecords builds a bundle per employee via the bounded fan-out.
// The second return reports whether any sub-query was dropped.
func (e *Engine) WorkforceRecords(ctx context.Context) ([]RecordBundle, bool, error) {
	employees, err := e.employees.List(ctx)
	if err != nil {
		return nil, false, err
	}

	bundles := make([]RecordBundle, len(employees))
	var partial atomic.Bool

	pool := NewWorkerPool(e.workers, len(employees))
	results := pool.Run(ctx)

	go func() {
		for i := range employees {
			i := i
			emp := employees[i]
			pool.Submit(func(taskCtx context.Context) error {
				bundle, degraded := e.collectBundle(taskCtx, emp)
				bundles[i] = bundle
				if degraded {
					partial.Store(true)
				}
				return nil
			})
		}
		pool.Close()
	}()

	for range results {
	}
	return bundles, partial.Load(), nil
}

func (e *Engine) collectBundle(ctx context.Context, emp employee.Employee) (RecordBundle, bool) {
	bundle := RecordBundle{
		Employee:       emp,
		Qualifications: []qualification.Qualification{},
		Skills:         []skill.Skill{},
		Trainings:      []training.Training{},
	}
	degraded := false

	if quals, err := e.qualifications.ListByEmployee(ctx, emp.ID); err != nil {
		e.logger.Printf("bundle sub-query degraded | employee=%s collection=qualifications err=%v", emp.ID, err)
		degraded = true
	} else {
		bundle.Qualifications = quals
	}
	if skills, err := e.skills.ListByEmployee(ctx, emp.ID); err != nil {
		e.logger.Printf("bundle sub-query degraded | employee=%s collection=skills err=%v", emp.ID, err)
		degraded = true
	} else {
		bundle.Skills = skills
	}
	if trainings, err := e.trainings.ListByEmployee(ctx, emp.ID); err != nil {
		e.logger.Printf("bundle sub-query degraded | employee=%s collection=trainings err=%v", emp.ID, err)
		degraded = true
	} else {
		bundle.Trainings = trainings
	}

	return bundle, degraded
}

func recentEmployees(employees []employee.Employee, n int) []employee.Employee {
	sorted := make([]employee.Employee, len(employees))
	copy(sorted, employees)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return head(sorted, n)
}

func groupCount[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, item := range items {
		out[key(item)]++
	}
	return out
}

func head[T any](items []T, n int) []T {
	if len(items) <= n {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out
}
